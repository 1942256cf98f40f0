package note

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/unitrack/unitrack/core"
)

// Note is a free-text note kept in a single shared collection with no
// per-user scoping.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type NewNote struct {
	Text string `json:"text" validate:"required"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.Text = core.CleanString(nn.Text)
	return validate.Struct(nn)
}
