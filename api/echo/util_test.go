package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/unitrack/unitrack/api/echo"
	"github.com/unitrack/unitrack/core"
	"github.com/unitrack/unitrack/core/academy"
	"github.com/unitrack/unitrack/core/note"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
	"github.com/unitrack/unitrack/core/user"
	emailsvc "github.com/unitrack/unitrack/services/email"
	logsvc "github.com/unitrack/unitrack/services/logger"
	"github.com/unitrack/unitrack/storage/blob"
	"github.com/unitrack/unitrack/storage/database/blobdb"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	server Server
	conf   *core.Config
	usrSvc *user.Service
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := &core.Config{
		AppName:          "Unitrack",
		Env:              "TEST",
		TestMode:         true,
		SecretKey:        "test-secret-key",
		DefaultFromEmail: mail.Address{Name: "Unitrack", Address: "noreply@localhost"},
		Server: core.ServerConfig{
			JWTExpirationDelta: time.Hour,
		},
	}

	db := blobdb.Open(blob.NewMemoryStore())
	usrRepo := blobdb.NewUserRepository(db)
	prjRepo := blobdb.NewProjectRepository(db)
	tskRepo := blobdb.NewTaskRepository(db)
	logger := logsvc.NewNopLogger()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	project.InitValidators(validate, translator)
	task.InitValidators(validate, translator)

	usrSvc := user.NewService(usrRepo)
	server := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		UserSvc:        usrSvc,
		ProjectSvc:     project.NewService(prjRepo, usrRepo, mailSvc, logger),
		TaskSvc:        task.NewService(tskRepo),
		NoteSvc:        note.NewService(blobdb.NewNoteRepository(db)),
		AcademySvc:     academy.NewService(blobdb.NewAcademyRepository(db), prjRepo, tskRepo, usrRepo),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return &testApp{server: server, conf: conf, usrSvc: usrSvc}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func (app *testApp) do(tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, tt.path, bytes.NewReader(tt.body))
	req.Header.Set("Content-Type", "application/json")
	if tt.token != "" {
		req.Header.Set("Authorization", "Bearer "+tt.token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

// getToken mints a token for a seeded demo account.
func (app *testApp) getToken(t *testing.T, email string) string {
	t.Helper()
	usr, err := app.usrSvc.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	token, err := GenerateToken(app.conf, GetUserClaims(app.conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decodeBody() failed: %v; body: %s", err, rec.Body.String())
	}
}

func TestHome(t *testing.T) {
	app := setup(t)
	rec := app.do(httpTest{path: "/"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Unitrack API!", rec.Body.String())
}
