package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/karmaloop/internal/identity"
	"github.com/abhisek/karmaloop/internal/store"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new operator and print the access key",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		name, _ := f.GetString("name")
		email, _ := f.GetString("email")
		institution, _ := f.GetString("institution")
		qualification, _ := f.GetString("qualification")
		field, _ := f.GetString("field")
		year, _ := f.GetString("year")
		interests, _ := f.GetStringSlice("interests")
		clarity, _ := f.GetInt("clarity")

		rt, err := openRuntime(cmd, runtimeOpts{})
		if err != nil {
			return err
		}
		defer rt.Close()
		ctx := cmd.Context()

		key, err := rt.engine.VerifyEmail(ctx, email)
		if err != nil {
			return explain(err)
		}
		sess, err := rt.engine.RegisterUser(ctx, store.UserRecord{
			Identity: store.Identity{Name: name, Email: email, AccessKey: key},
			Academic: store.Academic{Institution: institution, Qualification: qualification, Field: field, Year: year},
			Career:   store.Career{Interests: interests, Clarity: clarity},
		})
		if err != nil {
			return explain(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "IDENTITY VERIFIED. Welcome, %s.\n", sess.User.Identity.Name)
		fmt.Fprintf(out, "ACCESS KEY: %s\n", key)
		fmt.Fprintln(out, "Store this key. It is the only way back in.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and access key",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		key, _ := cmd.Flags().GetString("key")

		rt, err := openRuntime(cmd, runtimeOpts{})
		if err != nil {
			return err
		}
		defer rt.Close()

		sess, err := rt.engine.Login(cmd.Context(), email, key)
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ACCESS GRANTED. Welcome back, %s.\n", sess.User.Identity.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, runtimeOpts{})
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.engine.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session terminated.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in operator",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, runtimeOpts{})
		if err != nil {
			return err
		}
		defer rt.Close()

		var u *store.UserRecord
		if sess := rt.engine.Session(); sess != nil {
			u = &sess.User
		}
		printUser(cmd.OutOrStdout(), u)
		return nil
	},
}

func printUser(out io.Writer, u *store.UserRecord) {
	if u == nil {
		fmt.Fprintln(out, "guest")
		return
	}
	fmt.Fprintf(out, "Name:          %s\n", u.Identity.Name)
	fmt.Fprintf(out, "Email:         %s\n", u.Identity.Email)
	fmt.Fprintf(out, "Institution:   %s\n", u.Academic.Institution)
	fmt.Fprintf(out, "Qualification: %s\n", u.Academic.Qualification)
	fmt.Fprintf(out, "Field:         %s\n", u.Academic.Field)
	if u.Academic.Year != "" {
		fmt.Fprintf(out, "Year:          %s\n", u.Academic.Year)
	}
	if len(u.Career.Interests) > 0 {
		fmt.Fprintf(out, "Interests:     %s\n", strings.Join(u.Career.Interests, ", "))
	}
	fmt.Fprintf(out, "Clarity:       %d%%\n", u.Career.Clarity)
}

// explain rewrites identity errors into the messages users see.
func explain(err error) error {
	var verr *identity.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]string, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = fmt.Sprintf("--%s (%s)", flagFor(f.Field), f.Rule)
		}
		return fmt.Errorf("invalid input: %s", strings.Join(fields, ", "))
	case errors.Is(err, identity.ErrNotFound):
		return errors.New("ACCESS DENIED: INVALID EMAIL OR KEY")
	case errors.Is(err, identity.ErrAlreadyRegistered):
		return errors.New("USER ALREADY EXISTS. PLEASE LOG IN")
	default:
		return err
	}
}

// flagFor maps a record field path to its register flag.
func flagFor(path string) string {
	_, leaf, ok := strings.Cut(path, ".")
	if !ok {
		return path
	}
	if leaf == "key" {
		return "email"
	}
	return leaf
}

func init() {
	f := registerCmd.Flags()
	f.String("name", "", "Designation (full name)")
	f.String("email", "", "Email address")
	f.String("institution", "", "Institution")
	f.String("qualification", "", "Qualification, e.g. B.Tech")
	f.String("field", "", "Field of study")
	f.String("year", "", "Year of study (optional)")
	f.StringSlice("interests", nil, "Career interests, comma separated")
	f.Int("clarity", identity.DefaultClarity, "Career clarity, 0-100")

	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("key", "", "Access key (KL-2025-XXXX)")
}
