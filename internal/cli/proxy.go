package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soyeahso/adkit/internal/notebook"
)

func newProxyURLCmd(a *app) *cobra.Command {
	var (
		port    int
		host    string
		baseURL string
		html    bool
	)

	cmd := &cobra.Command{
		Use:   "proxy-url",
		Short: "Print the notebook proxy URL for the ADK web UI",
		Long: "Finds the running Jupyter server, extracts the kernel and token from its base URL " +
			"and prints the Kaggle proxy URL under which `adk web --url_prefix` is reachable.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Proxy.Port
			}
			if host == "" {
				host = a.cfg.Proxy.Host
			}

			var (
				p   notebook.Proxy
				err error
			)
			if baseURL != "" {
				p, err = notebook.BuildProxy(baseURL, host, port)
			} else {
				p, err = notebook.ProxyURL(host, port)
			}
			if err != nil {
				return err
			}
			a.log.Debug().Str("kernel", p.Kernel).Str("prefix", p.Prefix).Msg("proxy resolved")

			if html {
				return notebook.RenderLaunchBox(cmd.OutOrStdout(), p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.URL)
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", notebook.DefaultPort, "local port of the ADK web server")
	cmd.Flags().StringVar(&host, "host", "", "proxy host (default "+notebook.DefaultHost+")")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Jupyter base URL; skips server discovery")
	cmd.Flags().BoolVar(&html, "html", false, "print the launch instructions as HTML")

	return cmd
}
