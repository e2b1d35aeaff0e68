package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/app"
	"github.com/ziadkadry99/diana/internal/auth"
	"github.com/ziadkadry99/diana/internal/pages"
	"github.com/ziadkadry99/diana/internal/state"
)

var (
	accountEmail string
	whoamiRemote bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the classification service",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := promptEmail()
		if err != nil {
			return err
		}
		password, err := promptPassword("Password")
		if err != nil {
			return err
		}
		return runAccountFlow(auth.ActionLogin, func(f *auth.Forms) error {
			f.Login(api.Credentials{Email: email, Password: password})
			return nil
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account on the classification service",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := (&promptui.Prompt{Label: "Name (optional)"}).Run()
		if err != nil {
			return fmt.Errorf("name: %w", err)
		}
		email, err := promptEmail()
		if err != nil {
			return err
		}
		password, err := promptPassword("Password")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password")
		if err != nil {
			return err
		}
		return runAccountFlow(auth.ActionSignup, func(f *auth.Forms) error {
			return f.Signup(api.Registration{
				Name:            name,
				Email:           email,
				Password:        password,
				PasswordConfirm: confirm,
			})
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored account",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(false)
		if err != nil {
			return err
		}
		defer rt.Close()

		sess, stop := rt.startSession(context.Background(), app.Options{NoPolling: true})
		defer stop()

		var was *state.User
		if err := sess.Loop.Do(func() {
			was = sess.Store.User()
			sess.Forms.Logout()
		}); err != nil {
			return err
		}
		// Let the server call finish before the session stops.
		sess.Loop.Wait()

		if was == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("Logged out %s.\n", was.Email)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored account",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(false)
		if err != nil {
			return err
		}
		defer rt.Close()

		user := state.NewStore(rt.prefs, state.WithLogger(rt.log.Named("store"))).User()
		if user == nil {
			fmt.Println("Not logged in. Run `diana login`.")
			return nil
		}

		var usage *api.Stats
		if whoamiRemote {
			profile, err := rt.client.Profile(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching profile: %w", err)
			}
			if profile.User != nil {
				user = profile.User
			}
			usage = &profile.Stats
		}

		printUser(user, usage)
		return nil
	},
}

func printUser(u *state.User, usage *api.Stats) {
	name := u.Name
	if name == "" {
		name = "Not provided"
	}
	kind := "🆓 Free"
	if u.IsPremium {
		kind = "✨ Premium"
	}
	fmt.Printf("Name:         %s\n", name)
	fmt.Printf("Email:        %s\n", u.Email)
	fmt.Printf("Account type: %s\n", kind)
	if u.CreatedAt != nil {
		fmt.Printf("Member since: %s\n", pages.FormatDate(*u.CreatedAt))
	}
	if usage != nil {
		remaining := fmt.Sprint(usage.Remaining)
		if usage.IsPremium {
			remaining = "∞"
		}
		fmt.Printf("Analyses:     %d (remaining %s)\n", usage.Used, remaining)
	}
}

// runAccountFlow starts a session, runs submit on its loop and waits for
// the flow's result.
func runAccountFlow(action auth.Action, submit func(*auth.Forms) error) error {
	rt, err := openRuntime(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sess, stop := rt.startSession(ctx, app.Options{NoPolling: true})
	defer stop()

	results := make(chan auth.Result, 1)
	var submitErr error
	if err := sess.Loop.Do(func() {
		sess.Forms.OnResult(func(r auth.Result) {
			if r.Action != action {
				return
			}
			select {
			case results <- r:
			default:
			}
		})
		submitErr = submit(sess.Forms)
	}); err != nil {
		return err
	}
	if errors.Is(submitErr, auth.ErrPasswordMismatch) {
		return errors.New("passwords do not match")
	}
	if submitErr != nil {
		return submitErr
	}

	select {
	case r := <-results:
		sess.Loop.Wait()
		if r.Err != nil {
			fallback := "Connection error"
			if action == auth.ActionSignup {
				fallback = "Signup error"
			}
			return errors.New(failureDetail(r.Err, fallback))
		}
		verb := "Logged in"
		if action == auth.ActionSignup {
			verb = "Signed up"
		}
		fmt.Printf("✅ %s as %s\n", verb, r.User.DisplayName())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func promptEmail() (string, error) {
	if accountEmail != "" {
		return accountEmail, nil
	}
	p := promptui.Prompt{
		Label: "Email",
		Validate: func(s string) error {
			if _, err := mail.ParseAddress(s); err != nil {
				return errors.New("enter a valid email address")
			}
			return nil
		},
	}
	email, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("email: %w", err)
	}
	return email, nil
}

func promptPassword(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Mask:  '*',
		Validate: func(s string) error {
			if len(s) < 6 {
				return errors.New("at least 6 characters")
			}
			return nil
		},
	}
	pw, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return pw, nil
}

func init() {
	loginCmd.Flags().StringVar(&accountEmail, "email", "", "account email (prompted when empty)")
	signupCmd.Flags().StringVar(&accountEmail, "email", "", "account email (prompted when empty)")
	whoamiCmd.Flags().BoolVar(&whoamiRemote, "remote", false, "fetch the profile and usage from the service")
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}
