// Command fmsadmin runs administrative tasks against the faculty management store.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/services"
	"github.com/yigit/unifms/internal/bootstrap"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "fmsadmin",
		Short:         "Administer the faculty management service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "configs/config.yaml", "path to the YAML configuration file")

	cmd.AddCommand(
		newRolesCmd(opts),
		newUsersCmd(opts),
		newCreateAdminCmd(opts),
		newHashPasswordCmd(),
	)
	return cmd
}

// withDeps builds the application dependencies for one command run
func withDeps(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, deps *bootstrap.Dependencies) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	deps, err := bootstrap.Build(ctx, opts.configPath)
	if err != nil {
		return err
	}
	defer deps.Close()
	return fn(ctx, deps)
}

func newRolesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(cmd, opts, func(ctx context.Context, deps *bootstrap.Dependencies) error {
				roles, err := deps.Services.Roles.List(ctx)
				if err != nil {
					return err
				}
				printTable(cmd.OutOrStdout(), "roles", []string{"ID", "Name"}, len(roles), func(w *tablewriter.Table) {
					for _, r := range roles {
						w.Append([]string{strconv.FormatInt(r.ID, 10), string(r.Name)})
					}
				})
				return nil
			})
		},
	}
}

func newUsersCmd(opts *rootOptions) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users and their roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(cmd, opts, func(ctx context.Context, deps *bootstrap.Dependencies) error {
				var (
					users []*models.User
					err   error
				)
				if role != "" {
					users, err = deps.Services.Users.ListByRole(ctx, role)
				} else {
					users, err = deps.Services.Users.List(ctx)
				}
				if err != nil {
					return err
				}

				admin := color.New(color.FgHiGreen, color.Bold).SprintFunc()
				printTable(cmd.OutOrStdout(), "users", []string{"ID", "Username", "Email", "Roles"}, len(users), func(w *tablewriter.Table) {
					for _, u := range users {
						roles := strings.Join(u.RoleNames(), ",")
						if u.HasRole(models.RoleAdmin) {
							roles = admin(roles)
						}
						w.Append([]string{strconv.FormatInt(u.ID, 10), u.Username, u.Email, roles})
					}
				})
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "only list holders of this role")
	return cmd
}

func newCreateAdminCmd(opts *rootOptions) *cobra.Command {
	var in services.UserInput
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Roles = []string{string(models.RoleAdmin)}
			return withDeps(cmd, opts, func(ctx context.Context, deps *bootstrap.Dependencies) error {
				user, err := deps.Services.Users.Create(ctx, in)
				if err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Created administrator %s (id %d)\n", user.Username, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "username of the new administrator")
	cmd.Flags().StringVar(&in.Email, "email", "", "email of the new administrator")
	cmd.Flags().StringVar(&in.Password, "password", "", "password of the new administrator")
	for _, name := range []string{"username", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := pkgauth.NewPasswordHasher(cost).Hash(args[0])
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", pkgauth.DefaultBcryptCost, "bcrypt cost")
	return cmd
}

func printTable(out io.Writer, title string, headers []string, count int, appendFn func(w *tablewriter.Table)) {
	color.New(color.FgYellow, color.Bold).Fprintln(out, strings.ToUpper(title))

	w := tablewriter.NewWriter(out)
	w.SetHeader(headers)
	w.SetAutoFormatHeaders(false)
	appendFn(w)

	footers := make([]string, len(headers))
	footers[len(footers)-2] = "TOTAL"
	footers[len(footers)-1] = strconv.Itoa(count)
	w.SetFooter(footers)
	w.Render()
}
