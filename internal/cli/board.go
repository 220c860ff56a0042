package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewBoardCmd создаёт команду отображения доски.
func NewBoardCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var station string
	var search string
	var watch int

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kitchen board",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if watch <= 0 {
				board, err := client.Board(station, search)
				if err != nil {
					return err
				}
				renderBoard(out, board)
				return nil
			}

			// --watch: перерисовываем доску каждые N секунд
			ticker := time.NewTicker(time.Duration(watch) * time.Second)
			defer ticker.Stop()

			for {
				board, err := client.Board(station, search)
				if err != nil {
					out.Error(err.Error())
				} else {
					if !out.IsJSON() {
						out.Clear()
					}
					renderBoard(out, board)
				}

				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().StringVar(&station, "station", "", "Filter by station (grill, fry, salad, drinks, dessert)")
	cmd.Flags().StringVar(&search, "search", "", "Search by number, table, customer or item name")
	cmd.Flags().IntVar(&watch, "watch", 0, "Refresh every N seconds")

	return cmd
}

// renderBoard рисует доску: три колонки как три таблицы.
func renderBoard(out *Output, board *BoardResponse) {
	if out.IsJSON() {
		out.JSON(board)
		return
	}

	header := fmt.Sprintf("Station: %s", board.Station)
	if board.Query != "" {
		header += fmt.Sprintf("  Search: %q", board.Query)
	}
	if board.Loading {
		header += "  [loading]"
	}
	if board.Stale {
		header += "  [STALE]"
	}
	if board.PendingAlerts > 0 {
		header += fmt.Sprintf("  [%d new]", board.PendingAlerts)
	}
	fmt.Println(header)

	renderLane(out, "NEW", board.New)
	renderLane(out, "COOKING", board.Cooking)
	renderLane(out, "READY", board.Ready)
}

func renderLane(out *Output, title string, tickets []TicketResponse) {
	out.Section(fmt.Sprintf("%s (%d)", title, len(tickets)))

	if len(tickets) == 0 {
		return
	}

	headers := []string{"NUMBER", "STATION", "TYPE", "WHERE", "ITEMS", "ELAPSED", "URGENCY"}
	rows := make([][]string, len(tickets))
	for i, t := range tickets {
		rows[i] = []string{
			t.Number,
			t.Station,
			t.Type,
			ticketWhere(t),
			formatItems(t.Items),
			formatElapsed(t.ElapsedSec),
			t.Urgency,
		}
	}

	out.Table(headers, rows)
}

// ticketWhere — стол для зала, имя клиента для самовывоза/доставки.
func ticketWhere(t TicketResponse) string {
	if t.TableNumber != "" {
		return t.TableNumber
	}
	return t.CustomerName
}

func formatItems(items []LineItemResponse) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%dx %s", item.Quantity, item.Name)
	}
	return strings.Join(parts, ", ")
}

func formatElapsed(sec int64) string {
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
