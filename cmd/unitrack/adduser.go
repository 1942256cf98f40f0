package main

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/unitrack/unitrack/core/user"
)

var readPasswordFunc = term.ReadPassword // mockable

var addUserCmd = &cobra.Command{
	Use:   "adduser",
	Short: "Create a user account; the password is prompted",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")
		department, _ := cmd.Flags().GetString("department")

		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			return errors.New("password is required")
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		data := user.NewUser{
			Name:       name,
			Email:      email,
			Role:       user.Role(role),
			Department: department,
			Password:   string(pwd),
		}
		if err := data.Validate(a.validate); err != nil {
			return err
		}

		usr, err := a.usrSvc.Create(cmd.Context(), data)
		if err != nil {
			return err
		}
		fmt.Printf("User %s (%s) created with role %s.\n", usr.Name, usr.Email, usr.Role)
		return nil
	},
}

func init() {
	addUserCmd.Flags().String("name", "", "The user's full name")
	addUserCmd.Flags().String("email", "", "The user's email; doubles as the login")
	addUserCmd.Flags().String("role", string(user.RoleStudent), "One of ADMIN, SUPERVISOR, STUDENT")
	addUserCmd.Flags().String("department", "", "The user's department")
	_ = addUserCmd.MarkFlagRequired("name")
	_ = addUserCmd.MarkFlagRequired("email")
}
