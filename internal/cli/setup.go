package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/soyeahso/adkit/internal/credentials"
	"github.com/soyeahso/adkit/internal/hooks"
	"github.com/soyeahso/adkit/internal/kaggle"
)

func newSetupCmd(a *app) *cobra.Command {
	var (
		useDotenv  bool
		noDotenv   bool
		dotenvPath string
		vertex     bool
		secretName string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Resolve GOOGLE_API_KEY from a .env file or Kaggle secrets",
		Long: "Loads GOOGLE_API_KEY from a .env file (existing variables win) and falls back " +
			"to the Kaggle user-secrets vault. Exits 2 when no key could be resolved.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.credentialOptions()
			switch {
			case noDotenv:
				opts.UseDotenv = false
			case useDotenv:
				opts.UseDotenv = true
			}
			if cmd.Flags().Changed("dotenv-path") {
				opts.DotenvPath = dotenvPath
			}
			if vertex {
				opts.UseVertex = true
			}
			if cmd.Flags().Changed("secret-name") {
				opts.SecretName = secretName
			}

			res := a.resolveCredentials(cmd.Context(), opts)
			printAttempts(cmd.OutOrStdout(), res)
			if !res.OK {
				return &ExitError{Code: ExitFailure}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useDotenv, "dotenv", false, "load credentials from a .env file first (default)")
	cmd.Flags().BoolVar(&noDotenv, "no-dotenv", false, "skip the .env file and use Kaggle secrets only")
	cmd.MarkFlagsMutuallyExclusive("dotenv", "no-dotenv")
	cmd.Flags().StringVar(&dotenvPath, "dotenv-path", "", "path to the .env file (default: search upward from the working directory)")
	cmd.Flags().BoolVar(&vertex, "vertex", false, "route requests through Vertex AI")
	cmd.Flags().StringVar(&secretName, "secret-name", "", "Kaggle secret label holding the API key")

	return cmd
}

func (a *app) credentialOptions() credentials.Options {
	c := a.cfg.Credentials
	return credentials.Options{
		UseDotenv:  c.DotenvEnabled(),
		DotenvPath: c.DotenvPath,
		UseVertex:  c.Vertex,
		SecretName: c.SecretName,
	}
}

// resolveCredentials runs the resolver with the Kaggle vault wired in only
// when the environment offers it.
func (a *app) resolveCredentials(ctx context.Context, opts credentials.Options) credentials.Result {
	var secrets credentials.SecretFetcher
	if a.caps.KaggleSecrets {
		client, err := kaggle.NewClient(kaggle.Options{}, a.log)
		if err != nil {
			a.log.Warn().Err(err).Msg("kaggle secrets client unavailable")
		} else {
			secrets = client
		}
	}

	res := credentials.NewResolver(secrets, a.log).Setup(ctx, opts)
	a.hooks.Emit(ctx, hooks.EventCredentialsResolved, map[string]any{
		"ok":     res.OK,
		"source": string(res.Source),
		"vertex": res.Vertex,
	})
	return res
}

func printAttempts(w io.Writer, res credentials.Result) {
	for _, at := range res.Attempts {
		if at.Message != "" {
			fmt.Fprintln(w, at.Message)
		}
	}
}
