package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"docvault/internal/app"
	"docvault/internal/config"
	"docvault/internal/vault"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Login", "Upload").
func newApp(ctx context.Context, operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config (run `docvault config init` first?): %w", err)
	}

	a, err := app.NewApp(ctx, cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// friendly rewrites known vault errors into the short messages shown to the
// user; everything else passes through unchanged.
func friendly(err error) error {
	for _, sentinel := range []error{
		vault.ErrDuplicateUser,
		vault.ErrUnknownUser,
		vault.ErrInvalidCredentials,
		vault.ErrNotAuthenticated,
		vault.ErrNoActiveChallenge,
		vault.ErrInvalidOTP,
		vault.ErrNotFound,
		vault.ErrNotOwned,
		vault.ErrEncryptionFailure,
		vault.ErrDecryptionFailure,
		vault.ErrStoreUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}

// promptSecret reads a secret from stdin without echo when attached to a
// terminal, falling back to a plain line read otherwise (pipes, tests).
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var rootCmd = &cobra.Command{
	Use:   "docvault",
	Short: "Client-side encrypted document vault",
}

// config command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Database:   %s\n", cfg.Database.Type)
		fmt.Printf("Blobs:      %s\n", cfg.Blobs.Type)
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured backends are usable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ConfigCheck")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Validate(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Configuration OK")
		return nil
	},
}

// account commands

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Register")
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := promptSecret("Password: ")
		if err != nil {
			return err
		}

		if err := a.Register(cmd.Context(), args[0], password); err != nil {
			return friendly(err)
		}
		fmt.Println("Registration successful")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and receive an OTP challenge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Login")
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := promptSecret("Password: ")
		if err != nil {
			return err
		}

		code, err := a.Login(cmd.Context(), args[0], password)
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("OTP for verification: %s\n", code)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <code>",
	Short: "Verify the pending OTP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "VerifyOTP")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.VerifyOTP(cmd.Context(), args[0]); err != nil {
			return friendly(err)
		}
		fmt.Println("OTP verified successfully")
		return nil
	},
}

var otpCmd = &cobra.Command{
	Use:   "otp",
	Short: "Manage the OTP challenge",
}

var otpResendCmd = &cobra.Command{
	Use:   "resend",
	Short: "Issue a fresh OTP, replacing any pending one",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ResendOTP")
		if err != nil {
			return err
		}
		defer a.Close()

		code, err := a.ResendOTP(cmd.Context())
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("OTP for verification: %s\n", code)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Logout")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Logout(cmd.Context()); err != nil {
			return friendly(err)
		}
		fmt.Println("Logged out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Status")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Status(cmd.Context())
		if err != nil {
			return friendly(err)
		}

		state := vault.StateOf(sess)
		fmt.Printf("State: %s\n", state)
		if state != vault.LoggedOut {
			fmt.Printf("User:  %s\n", sess.Identity)
		}
		return nil
	},
}

// document commands

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Encrypt and store a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Upload")
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.Upload(cmd.Context(), args[0])
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Document uploaded successfully (id %s)\n", id)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your stored documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "List")
		if err != nil {
			return err
		}
		defer a.Close()

		recs, err := a.List(cmd.Context())
		if err != nil {
			return friendly(err)
		}

		if len(recs) == 0 {
			fmt.Println("No documents")
			return nil
		}
		for _, r := range recs {
			fmt.Printf("%s\t%s\t%s\t%d bytes\t%s\n",
				r.ID, r.FileName, r.MimeType, r.SizeBytes,
				r.UploadedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Decrypt and download a document (requires a fresh OTP)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Download")
		if err != nil {
			return err
		}
		defer a.Close()

		code, err := promptSecret("OTP: ")
		if err != nil {
			return err
		}

		path, err := a.Download(cmd.Context(), args[0], code, downloadOutput)
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Document downloaded to %s\n", path)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Delete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Delete(cmd.Context(), args[0]); err != nil {
			return friendly(err)
		}
		fmt.Println("Document deleted")
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output path (defaults to the stored file name)")

	configCmd.AddCommand(configInitCmd, configShowCmd, configCheckCmd)
	otpCmd.AddCommand(otpResendCmd)
	rootCmd.AddCommand(
		configCmd,
		registerCmd,
		loginCmd,
		verifyCmd,
		otpCmd,
		logoutCmd,
		statusCmd,
		uploadCmd,
		listCmd,
		downloadCmd,
		deleteCmd,
	)
}
