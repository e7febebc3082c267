package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillproof/internal/auth"
	"github.com/abhisek/skillproof/internal/store"
)

// Recruiters cannot self-register through the API; they are provisioned
// here by an operator.
var createRecruiterCmd = &cobra.Command{
	Use:   "create-recruiter",
	Short: "Provision a recruiter account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return createRecruiter(cmd)
	},
}

func init() {
	rootCmd.AddCommand(createRecruiterCmd)

	createRecruiterCmd.Flags().String("username", "", "recruiter username")
	createRecruiterCmd.Flags().String("email", "", "recruiter email")
	createRecruiterCmd.Flags().String("password", "", "recruiter password")
	_ = createRecruiterCmd.MarkFlagRequired("username")
	_ = createRecruiterCmd.MarkFlagRequired("email")
	_ = createRecruiterCmd.MarkFlagRequired("password")
}

func createRecruiter(cmd *cobra.Command) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer st.Close()

	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &store.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         store.RoleRecruiter,
	}
	if err := st.Users().Create(cmd.Context(), user); err != nil {
		return fmt.Errorf("create recruiter: %w", err)
	}

	fmt.Printf("recruiter %q created (id %d)\n", username, user.ID)
	return nil
}
