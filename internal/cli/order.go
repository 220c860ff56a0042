package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewOrderCmd создаёт группу команд для работы с заказами.
func NewOrderCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders on the board",
	}

	cmd.AddCommand(
		newOrderAdvanceCmd(clientFn, outputFn),
		newOrderRecallCmd(clientFn, outputFn),
		newOrderDoneCmd(clientFn, outputFn),
		newOrderStatusCmd(clientFn, outputFn),
		newOrderCreateCmd(clientFn, outputFn),
	)

	return cmd
}

func newOrderAdvanceCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "advance ID",
		Short: "Move an order one step forward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			change, err := client.AdvanceOrder(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Order %s -> %s", change.ID, change.Status))
			out.Print(
				[]string{"ID", "STATUS"},
				[][]string{{change.ID, change.Status}},
				change,
			)
			return nil
		},
	}
}

func newOrderRecallCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "recall ID",
		Short: "Move an order one step back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			change, err := client.RecallOrder(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Order %s -> %s", change.ID, change.Status))
			out.Print(
				[]string{"ID", "STATUS"},
				[][]string{{change.ID, change.Status}},
				change,
			)
			return nil
		},
	}
}

func newOrderDoneCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Complete an order and remove it from the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			change, err := client.DoneOrder(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Order %s completed", change.ID))
			out.Print(
				[]string{"ID", "STATUS"},
				[][]string{{change.ID, change.Status}},
				change,
			)
			return nil
		},
	}
}

func newOrderStatusCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set an arbitrary order status (new, cooking, ready, done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			change, err := client.SetOrderStatus(args[0], args[1])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Order %s -> %s", change.ID, change.Status))
			out.Print(
				[]string{"ID", "STATUS"},
				[][]string{{change.ID, change.Status}},
				change,
			)
			return nil
		},
	}
}

func newOrderCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var orderType string
	var station string
	var items []string
	var note string
	var table string
	var customer string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a test order via the order source",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			lineItems, err := parseItems(items)
			if err != nil {
				return err
			}

			order, err := client.CreateOrder(CreateOrderRequest{
				Type:         orderType,
				Station:      station,
				Items:        lineItems,
				Note:         note,
				TableNumber:  table,
				CustomerName: customer,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Order created: %s (%s)", order.Number, order.ID))
			out.Print(
				[]string{"ID", "NUMBER", "STATION", "TYPE", "STATUS"},
				[][]string{{order.ID, order.Number, order.Station, order.Type, order.Status}},
				order,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&orderType, "type", "dine_in", "Fulfillment type (dine_in, takeout, delivery)")
	cmd.Flags().StringVar(&station, "station", "", "Kitchen station (required)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Line item NAME:QTY, repeatable (required)")
	cmd.Flags().StringVar(&note, "note", "", "Order note")
	cmd.Flags().StringVar(&table, "table", "", "Table number")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name")
	cmd.MarkFlagRequired("station")
	cmd.MarkFlagRequired("item")

	return cmd
}

// parseItems разбирает --item NAME:QTY. Количество по умолчанию 1.
func parseItems(items []string) ([]CreateLineItemRequest, error) {
	result := make([]CreateLineItemRequest, len(items))
	for i, raw := range items {
		name := raw
		qty := 1

		if idx := strings.LastIndex(raw, ":"); idx >= 0 {
			name = raw[:idx]
			parsed, err := strconv.Atoi(raw[idx+1:])
			if err != nil || parsed <= 0 {
				return nil, fmt.Errorf("invalid item %q: expected NAME:QTY", raw)
			}
			qty = parsed
		}

		if name == "" {
			return nil, fmt.Errorf("invalid item %q: empty name", raw)
		}

		result[i] = CreateLineItemRequest{Name: name, Quantity: qty}
	}
	return result, nil
}
