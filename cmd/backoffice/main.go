// backoffice es la consola de operación de la pantalla de clientes: lista
// con búsqueda y severidad de deuda, borra con confirmación, consulta el
// historial y crea/edita clientes contra el API.
//
// Uso:
//
//	backoffice list --search maria
//	backoffice delete <id> [--yes]
//	backoffice history <id>
//	backoffice add --name "Ali" --phone 555
//	backoffice edit <id> --name "Ali B."
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eymenelneccar/ewf/internal/application/dto"
	"github.com/eymenelneccar/ewf/internal/backoffice"
	"github.com/eymenelneccar/ewf/internal/domain/debt"
	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

var (
	apiURL string
	token  string

	rootCmd = &cobra.Command{
		Use:   "backoffice",
		Short: "Consola de clientes del back-office EWF",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("EWF_API_URL", "http://localhost:8080"), "URL base del API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("EWF_TOKEN"), "token Bearer (o EWF_TOKEN)")
	rootCmd.AddCommand(listCmd(), deleteCmd(), historyCmd(), addCmd(), editCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// consoleNotifier imprime las notificaciones de la vista en la terminal.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Println("✔ " + msg) }
func (consoleNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, "✖ "+msg) }

// consoleNavigator es el destino de la redirección al login; redirected se
// cierra cuando la vista nos manda al login para que el comando espere.
type consoleNavigator struct {
	redirected chan struct{}
}

func newConsoleNavigator() *consoleNavigator {
	return &consoleNavigator{redirected: make(chan struct{})}
}

func (n *consoleNavigator) RedirectToLogin() {
	fmt.Fprintf(os.Stderr, "→ abriendo %s\n", backoffice.LoginPath)
	close(n.redirected)
}

func newView() (*backoffice.ListView, *consoleNavigator) {
	nav := newConsoleNavigator()
	view := backoffice.NewListView(backoffice.Config{
		Store:         backoffice.NewClient(apiURL, token),
		Cache:         backoffice.NewMemoryCache(30 * time.Second),
		Notifier:      consoleNotifier{},
		Navigator:     nav,
		RedirectDelay: 200 * time.Millisecond,
	})
	return view, nav
}

func listCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista clientes con su severidad de deuda",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _ := newView()
			if err := view.SetSearch(context.Background(), search); err != nil {
				return err
			}
			renderList(view)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "término de búsqueda (nombre, teléfono o email)")
	return cmd
}

func renderList(view *backoffice.ListView) {
	switch view.State() {
	case backoffice.ListEmpty:
		fmt.Println(view.EmptyMessage())
	case backoffice.ListPopulated:
		for _, c := range view.Customers() {
			card := view.Card(c)
			line := fmt.Sprintf("%-36s  %-24s", c.ID, c.Name)
			switch card.Severity {
			case debt.SeverityCritical:
				line += fmt.Sprintf("  [CRÍTICO %s] %s", card.DebtLabel, card.OverageNote)
			case debt.SeverityWarning:
				line += fmt.Sprintf("  [deuda %s]", card.DebtLabel)
			}
			if !c.IsActive {
				line += "  (inactivo)"
			}
			fmt.Println(line)
		}
	}
}

func deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un cliente, con confirmación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			view, nav := newView()

			// El prompt debe mostrar el nombre del registro, no solo el ID.
			rec := entity.Customer{ID: args[0]}
			if err := view.Refresh(ctx); err == nil {
				for _, c := range view.Customers() {
					if c.ID == args[0] {
						rec = c
						break
					}
				}
			}

			view.RequestDelete(rec)
			if !yes {
				fmt.Println(view.ConfirmMessage())
				fmt.Print("Confirmar [s/N]: ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "s" && answer != "si" && answer != "sí" {
					view.CancelDelete()
					fmt.Println("Cancelado")
					return nil
				}
			}

			err := view.ConfirmDelete(ctx)
			if err != nil && backoffice.ClassifyError(err) == backoffice.KindUnauthorized {
				// Esperar la redirección diferida antes de terminar el proceso.
				select {
				case <-nav.redirected:
				case <-time.After(2 * time.Second):
				}
			}
			if err != nil {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "no pedir confirmación")
	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Muestra el historial de movimientos de un cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := backoffice.NewClient(apiURL, token)
			txs, err := client.ListTransactions(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				fmt.Println("Sin movimientos")
				return nil
			}
			for _, tx := range txs {
				kind := "cargo"
				if tx.Kind == entity.TransactionPayment {
					kind = "abono"
				}
				fmt.Printf("%s  %-6s  %12s  %s\n",
					tx.CreatedAt.Format("2006-01-02"), kind, debt.FormatAmount(tx.Amount), tx.Note)
			}
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	var in dto.CreateCustomerRequest
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea un cliente (formulario en modo crear)",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _ := newView()
			view.OpenForm(nil)
			defer view.CloseForm()

			client := backoffice.NewClient(apiURL, token)
			c, err := client.CreateCustomer(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Creado %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre (requerido)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "teléfono")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Address, "address", "", "dirección")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func editCmd() *cobra.Command {
	var in dto.UpdateCustomerRequest
	var inactive bool
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edita un cliente (formulario en modo editar)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _ := newView()
			view.OpenForm(&entity.Customer{ID: args[0]})
			defer view.CloseForm()

			if cmd.Flags().Changed("inactive") {
				active := !inactive
				in.IsActive = &active
			}
			client := backoffice.NewClient(apiURL, token)
			c, err := client.UpdateCustomer(context.Background(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("Actualizado %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "teléfono")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Address, "address", "", "dirección")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "marcar inactivo")
	return cmd
}
