package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAlertsCmd создаёт группу команд управления оповещениями.
func NewAlertsCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Manage new-order alerts",
	}

	cmd.AddCommand(
		newAlertsOnCmd(clientFn, outputFn),
		newAlertsOffCmd(clientFn, outputFn),
		newAlertsDrainCmd(clientFn, outputFn),
	)

	return cmd
}

func newAlertsOnCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "on",
		Short: "Enable the new-order chime",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAlerts(clientFn(), outputFn(), true)
		},
	}
}

func newAlertsOffCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "off",
		Short: "Disable the chime and clear pending alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAlerts(clientFn(), outputFn(), false)
		},
	}
}

func setAlerts(client *Client, out *Output, enabled bool) error {
	state, err := client.SetAlertsEnabled(enabled)
	if err != nil {
		return err
	}

	if state.Enabled {
		out.Success("Alerts enabled")
	} else {
		out.Success("Alerts disabled")
	}
	if out.IsJSON() {
		out.JSON(state)
	}
	return nil
}

func newAlertsDrainCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "drain",
		Short: "Fetch pending alerts and clear the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			alerts, err := client.DrainAlerts()
			if err != nil {
				return err
			}

			if len(alerts) == 0 {
				out.Success("No pending alerts")
				if out.IsJSON() {
					out.JSON([]AlertResponse{})
				}
				return nil
			}

			out.Success(fmt.Sprintf("%d new order(s)", len(alerts)))
			headers := []string{"NUMBER", "ORDER ID", "AT"}
			rows := make([][]string, len(alerts))
			for i, a := range alerts {
				rows[i] = []string{a.Number, a.OrderID, a.At}
			}
			out.Print(headers, rows, alerts)
			return nil
		},
	}
}
