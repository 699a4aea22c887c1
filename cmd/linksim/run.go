package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/linksim/internal/config"
	"github.com/danmuck/linksim/internal/link"
	"github.com/danmuck/linksim/internal/link/event"
	"github.com/danmuck/linksim/internal/logging"
	"github.com/danmuck/linksim/internal/observability"
)

func runCmd() *cobra.Command {
	var (
		scenarioPath string
		metricsAddr  string
		sc           config.Scenario
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a link transfer step by step until it finishes",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.ConfigureRuntime()
			logger := observability.InitLogger("linksim")
			observability.RegisterMetrics()

			if scenarioPath != "" {
				loaded, err := config.LoadScenario(scenarioPath)
				if err != nil {
					return err
				}
				sc = loaded
			} else {
				config.ApplyDefaults(&sc)
				if err := config.ValidateScenario(sc); err != nil {
					return err
				}
			}

			if metricsAddr != "" {
				go func() {
					mux := http.NewServeMux()
					mux.Handle("/metrics", promhttp.Handler())
					if err := http.ListenAndServe(metricsAddr, mux); err != nil {
						log.Error().Err(err).Msg("metrics listener stopped")
					}
				}()
			}

			params := sc.SessionParams()
			params.Recorder = event.Log{Logger: logger}
			sess, err := link.NewSession(params)
			if err != nil {
				return err
			}
			logger.Info().
				Str("run_id", sess.ID()).
				Str("scenario", sc.Name).
				Int("units", len(params.Data)).
				Float64("loss_probability", sc.LossProbability).
				Bool("corruption", sc.Corruption).
				Msg("session created")

			for i := 0; i < sc.MaxSteps; i++ {
				out := sess.Step()
				printStatus(sess, out)
				if out.Kind == link.StepFinished {
					break
				}
			}

			if sess.State() != link.StateFinished {
				return fmt.Errorf("transfer incomplete after %d steps (lost frames need further steps)", sess.Steps())
			}
			fmt.Printf("delivered: %q in %d steps\n", strings.Join(sess.Delivered(), ""), sess.Steps())
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario TOML path (flags are ignored when set)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")
	cmd.Flags().StringVar(&sc.Name, "name", "cli", "scenario name")
	cmd.Flags().StringVar(&sc.Data, "data", "Hello", "data to send, one frame per character")
	cmd.Flags().StringVar(&sc.Polynomial, "polynomial", config.DefaultPolynomial, "generator polynomial bits")
	cmd.Flags().IntVar(&sc.WindowSize, "window", config.DefaultWindowSize, "sliding window size")
	cmd.Flags().Float64Var(&sc.LossProbability, "loss", 0, "frame loss probability in [0,1]")
	cmd.Flags().BoolVar(&sc.Corruption, "corruption", false, "enable probabilistic single-bit corruption")
	cmd.Flags().Uint64Var(&sc.Seed, "seed", 0, "channel random seed (0 = nondeterministic)")
	cmd.Flags().IntVar(&sc.MaxSteps, "max-steps", config.DefaultMaxSteps, "stop after this many steps")

	return cmd
}

func printStatus(sess *link.Session, out link.StepOutcome) {
	send := sess.SenderSnapshot()
	recv := sess.ReceiverSnapshot()

	verdict := out.Kind.String()
	if out.Kind == link.StepAckApplied {
		verdict = fmt.Sprintf("%s(%d)", verdict, out.Ack)
	}
	fmt.Printf("step %-3d %-16s sender[next=%d base=%d/%d] receiver[deliver=%d buffered=%d]\n",
		sess.Steps(), verdict,
		send.NextFrameToSend, send.ExpectedAck, len(send.Buffer),
		recv.NextToDeliver, len(recv.Buffered))
}
