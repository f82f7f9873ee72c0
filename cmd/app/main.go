package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	tcube "github.com/iwtcode/tcubeAdapter"
	"github.com/iwtcode/tcubeAdapter/internal/console"
)

const usage = "Usage = Example_TBD001 [serial_no] [position: optional (0 - 1715200)] [velocity: optional (0 - 3838091)]"

// Коды завершения процесса.
const (
	exitOK           = 0
	exitUsage        = 1
	exitSessionError = 2
)

// app связывает CLI с клиентом; зависимости подменяются в тестах.
type app struct {
	stdin      *os.File
	stdout     io.Writer
	loadConfig func() *tcube.Config
	newClient  func(*tcube.Config) (*tcube.Client, error)
	waitForKey func(*os.File) error

	exitCode int
}

func newApp() *app {
	return &app{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		loadConfig: tcube.Load,
		newClient:  tcube.New,
		waitForKey: console.WaitForKey,
	}
}

func (a *app) rootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tbd001 [serial_no] [position] [velocity]",
		Short: "Home a TCube Brushless Motor controller and move it to a position",
		Long: `Opens the TCube Brushless Motor controller with the given serial number, homes it,
optionally sets the maximum velocity and moves it to the requested position.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               a.run,
	}
}

func (a *app) execute(ctx context.Context, args []string) int {
	// cobra подставляет os.Args[1:] вместо nil
	if args == nil {
		args = []string{}
	}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stdout)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(a.stdout, err)
		return exitSessionError
	}
	return a.exitCode
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stdout, usage)
		a.pause()
		a.exitCode = exitUsage
		return nil
	}

	params := parseArgs(args)
	cfg := a.loadConfig()

	client, err := a.newClient(cfg)
	if err != nil {
		fmt.Fprintf(a.stdout, "Failed to initialize driver: %v\n", err)
		a.exitCode = exitSessionError
		if cfg.PauseOnExit {
			a.pause()
		}
		return nil
	}
	defer client.Close()

	logger := client.GetLogger()
	report, err := client.RunSession(cmd.Context(), params, a.stdout)
	if err != nil {
		logger.WithError(err).WithField("serial", params.SerialNo).Debug("session aborted")
		fmt.Fprintf(a.stdout, "Device %s: %v\n", params.SerialNo, err)
		a.exitCode = exitSessionError
	} else {
		a.exitCode = exitOK
	}
	logger.WithFields(logrus.Fields{
		"session":   report.SessionID,
		"opened":    report.Opened,
		"completed": report.Completed,
		"duration":  report.Duration,
	}).Debug("session finished")

	if cfg.PauseOnExit {
		a.pause()
	}
	return nil
}

func (a *app) pause() {
	if err := a.waitForKey(a.stdin); err != nil {
		fmt.Fprintf(a.stdout, "Failed to read key: %v\n", err)
	}
}

func main() {
	// Файл .env не обязателен
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := newApp().execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
