// KDS CLI — инструмент командной строки для доски заказов.
//
// Использование:
//
//	kds [--api-url URL] [--orderd-url URL] [--json] <command> [flags]
//
// Команды:
//
//	board   Просмотр доски
//	order   Смена статусов и создание заказов
//	alerts  Управление оповещениями о новых заказах
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/KDS/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var orderdURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "kds",
		Short:         "KDS CLI — kitchen display board tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "Board API URL")
	rootCmd.PersistentFlags().StringVar(&orderdURL, "orderd-url", "http://localhost:8081", "Order source URL (for order create)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL, orderdURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewBoardCmd(clientFn, outputFn),
		cli.NewOrderCmd(clientFn, outputFn),
		cli.NewAlertsCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
