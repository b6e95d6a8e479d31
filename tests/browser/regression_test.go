package browser

import (
	"fmt"
	"testing"

	"github.com/spendwise/spendwise-e2e/internal/flow"
	"github.com/spendwise/spendwise-e2e/internal/runner"
)

// rowCell targets a cell inside the table row for a named record. Rows
// are keyed by data-name, so the locator survives reordering.
func rowCell(name, testid string) string {
	return fmt.Sprintf(`tr[data-name=%q] [data-testid=%s]`, name, testid)
}

// TestSpendWiseRegression drives the full CRUD regression through one
// authenticated browser session. Cases run strictly in priority order
// and mutate shared application state: the category created at 20 is
// renamed at 21 and deleted at 22, the wallet renamed at 31 carries the
// transactions created at 41, and the budget flow reuses the category
// created at 40. Dependent cases skip when a prerequisite failed.
func TestSpendWiseRegression(t *testing.T) {
	env := setupSuite(t)
	fl := env.sess.Flow

	g := runner.NewGroup("spendwise regression")

	g.Add("login lands on dashboard", 10, func(t *testing.T) {
		must(t, fl.Navigate(env.baseURL, "/", "#dashboard-heading"))
		must(t, fl.VerifyText("#dashboard-heading", "Dashboard"))
	})

	g.Add("create category", 20, func(t *testing.T) {
		must(t, fl.Navigate(env.baseURL, "/categories", "#category-form"))
		must(t, fl.Run([]flow.Step{
			flow.FillStep("fill category name", "#category-name", "Jolibee"),
			flow.FillStep("fill category color", "#category-color", "#008000"),
			flow.ClickStep("save category", "[data-testid=save-category]"),
		}))
		must(t, fl.ConfirmDialogs(1))
		must(t, fl.VerifyText(rowCell("Jolibee", "category-name"), "Jolibee"))
		must(t, fl.VerifyText(rowCell("Jolibee", "category-color"), "#008000"))
	})

	g.Add("edit category", 21, func(t *testing.T) {
		g.RequirePrior(t, "create category")
		must(t, fl.Navigate(env.baseURL, "/categories", "#category-form"))
		must(t, fl.Run([]flow.Step{
			flow.ClickStep("open category editor", rowCell("Jolibee", "edit-category")),
		}))
		// The editor is ready once the form is prefilled with the
		// current name; filling before that would hit the list page.
		must(t, fl.VerifyContains(`value="Jolibee"`))
		must(t, fl.Run([]flow.Step{
			flow.FillStep("fill new category name", "#category-name", "Mcdo"),
			flow.FillStep("fill new category color", "#category-color", "#FFFF00"),
			flow.ClickStep("save renamed category", "[data-testid=save-category]"),
		}))
		must(t, fl.ConfirmDialogs(1))
		must(t, fl.VerifyText(rowCell("Mcdo", "category-name"), "Mcdo"))
		must(t, fl.VerifyNotContains("Jolibee"))
	})

	g.Add("delete category", 22, func(t *testing.T) {
		g.RequirePrior(t, "edit category")
		must(t, fl.Navigate(env.baseURL, "/categories", "#category-form"))
		must(t, fl.Run([]flow.Step{
			flow.ClickStep("delete category", rowCell("Mcdo", "delete-category")),
		}))
		must(t, fl.ConfirmDialogs(2))
		must(t, fl.VerifyNotContains("Mcdo"))
	})

	g.Add("create wallet", 30, func(t *testing.T) {
		must(t, fl.Navigate(env.baseURL, "/wallets", "#wallet-form"))
		must(t, fl.Run([]flow.Step{
			flow.FillStep("fill wallet name", "#wallet-name-input", "GCASH"),
			flow.FillStep("fill wallet balance", "#wallet-balance", "10000"),
			flow.ClickStep("save wallet", "[data-testid=save-wallet]"),
		}))
		must(t, fl.ConfirmDialogs(1))
		must(t, fl.VerifyText(rowCell("GCASH", "wallet-name"), "GCASH"))
		must(t, fl.VerifyText(rowCell("GCASH", "wallet-balance"), "₱ 10,000.00"))
	})

	g.Add("edit wallet", 31, func(t *testing.T) {
		g.RequirePrior(t, "create wallet")
		must(t, fl.Navigate(env.baseURL, "/wallets", "#wallet-form"))
		must(t, fl.Run([]flow.Step{
			flow.ClickStep("open wallet editor", rowCell("GCASH", "edit-wallet")),
		}))
		must(t, fl.VerifyContains(`value="GCASH"`))
		must(t, fl.Run([]flow.Step{
			flow.FillStep("fill new wallet name", "#wallet-name-input", "GoTyme"),
			flow.FillStep("fill new wallet balance", "#wallet-balance", "15000"),
			flow.ClickStep("save renamed wallet", "[data-testid=save-wallet]"),
		}))
		must(t, fl.ConfirmDialogs(1))
		must(t, fl.VerifyText(rowCell("GoTyme", "wallet-name"), "GoTyme"))
		must(t, fl.VerifyText(rowCell("GoTyme", "wallet-balance"), "₱ 15,000.00"))
		must(t, fl.VerifyNotContains("GCASH"))
	})

	// The Mcdo category is gone by now, so the transaction and budget
	// flows get their own category first.
	g.Add("create transaction category", 40, func(t *testing.T) {
		must(t, fl.Navigate(env.baseURL, "/categories", "#category-form"))
		must(t, fl.Run([]flow.Step{
			flow.FillStep("fill category name", "#category-name", "Food"),
			flow.FillStep("fill category color", "#category-color", "#0000FF"),
			flow.ClickStep("save category", "[data-testid=save-category]"),
		}))
		must(t, fl.ConfirmDialogs(1))
		must(t, fl.VerifyText(rowCell("Food", "category-name"), "Food"))
	})

	g.Add("create transaction", 41, func(t *testing.T) {
		g.RequirePrior(t, "edit wallet", "create transaction category")
		must(t, fl.Navigate(env.baseURL, "/transactions", "#transaction-form"))
		must(t, fl.Run([]flow.Step{
			flow.FillStep("fill transaction amount", "#txn-amount-input", "500"),
			flow.SelectStep("choose transaction type", "#txn-type", "Expense"),
			flow.SelectStep("choose wallet", "#txn-wallet", "GoTyme"),
			flow.SelectStep("choose category", "#txn-category", "Food"),
			flow.FillStep("fill transaction note", "#txn-note", "lunch"),
			flow.ClickStep("save transaction", "[data-testid=save-txn]"),
		}))
		must(t, fl.ConfirmDialogs(1))
		must(t, fl.VerifyText("[data-testid=txn-amount]", "-₱ 500.00"))
	})

	g.Add("edit transaction", 42, func(t *testing.T) {
		g.RequirePrior(t, "create transaction")
		must(t, fl.Navigate(env.baseURL, "/transactions", "#transaction-form"))
		must(t, fl.Run([]flow.Step{
			flow.ClickStep("open transaction editor", "[data-testid=txn-row] [data-testid=edit-txn]"),
		}))
		// Editor prefills the magnitude without the expense sign.
		must(t, fl.VerifyContains(`value="₱ 500.00"`))
		must(t, fl.Run([]flow.Step{
			flow.FillStep("fill new transaction amount", "#txn-amount-input", "1500"),
			flow.ClickStep("save edited transaction", "[data-testid=save-txn]"),
		}))
		must(t, fl.ConfirmDialogs(1))
		must(t, fl.VerifyText("[data-testid=txn-amount]", "-₱ 1,500.00"))
	})

	g.Add("delete transaction", 43, func(t *testing.T) {
		g.RequirePrior(t, "edit transaction")
		must(t, fl.Navigate(env.baseURL, "/transactions", "#transaction-form"))
		must(t, fl.Run([]flow.Step{
			flow.ClickStep("delete transaction", "[data-testid=txn-row] [data-testid=delete-txn]"),
		}))
		must(t, fl.ConfirmDialogs(2))
		must(t, fl.VerifyNotContains("-₱ 1,500.00"))
	})

	g.Add("create budget", 50, func(t *testing.T) {
		g.RequirePrior(t, "create transaction category")
		must(t, fl.Navigate(env.baseURL, "/budgets", "#budget-form"))
		must(t, fl.Run([]flow.Step{
			flow.SelectStep("choose budget category", "#budget-category", "Food"),
			flow.FillStep("fill budget limit", "#budget-limit", "8000"),
			flow.FillStep("fill budget note", "#budget-note", "**Strict** monthly cap"),
			flow.ClickStep("save budget", "[data-testid=save-budget]"),
		}))
		must(t, fl.ConfirmDialogs(1))
		must(t, fl.VerifyText(rowCell("Food", "budget-limit"), "₱ 8,000.00"))
		// Markdown note renders as HTML, not literal asterisks.
		must(t, fl.VerifyContains("<strong>Strict</strong>"))
	})

	g.Add("edit budget", 51, func(t *testing.T) {
		g.RequirePrior(t, "create budget")
		must(t, fl.Navigate(env.baseURL, "/budgets", "#budget-form"))
		must(t, fl.Run([]flow.Step{
			flow.ClickStep("open budget editor", rowCell("Food", "edit-budget")),
		}))
		must(t, fl.VerifyContains(`value="₱ 8,000.00"`))
		must(t, fl.Run([]flow.Step{
			flow.FillStep("fill new budget limit", "#budget-limit", "12000"),
			flow.ClickStep("save edited budget", "[data-testid=save-budget]"),
		}))
		must(t, fl.ConfirmDialogs(1))
		must(t, fl.VerifyText(rowCell("Food", "budget-limit"), "₱ 12,000.00"))
	})

	g.Add("delete budget", 52, func(t *testing.T) {
		g.RequirePrior(t, "edit budget")
		must(t, fl.Navigate(env.baseURL, "/budgets", "#budget-form"))
		must(t, fl.Run([]flow.Step{
			flow.ClickStep("delete budget", rowCell("Food", "delete-budget")),
		}))
		must(t, fl.ConfirmDialogs(2))
		// "Food" stays in the category select, so absence is asserted
		// on the formatted limit instead.
		must(t, fl.VerifyNotContains("₱ 12,000.00"))
	})

	g.Add("export transactions csv", 60, func(t *testing.T) {
		must(t, fl.Navigate(env.baseURL, "/", "#dashboard-heading"))
		must(t, fl.Run([]flow.Step{
			flow.ClickStep("export transactions", "[data-testid=export-csv]"),
		}))
		must(t, fl.VerifyText("[data-testid=export-url]", "/"+exportBucket+"/exports/transactions-"))
	})

	g.Run(t)
}
