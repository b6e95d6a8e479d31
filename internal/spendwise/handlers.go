package spendwise

import (
	"net/http"
	"strings"
)

// =============================================================================
// Categories
// =============================================================================

type categoriesView struct {
	baseView
	FormAction string
	Editing    Category
	Categories []Category
}

func (a *App) categoriesView(r *http.Request, formAction string, editing Category) (*categoriesView, error) {
	categories, err := a.store.ListCategories(r.Context())
	if err != nil {
		return nil, err
	}
	return &categoriesView{
		baseView:   baseView{Title: "Categories", Authed: true, Modals: modalsFor(r)},
		FormAction: formAction,
		Editing:    editing,
		Categories: categories,
	}, nil
}

func (a *App) handleCategories(w http.ResponseWriter, r *http.Request) {
	view, err := a.categoriesView(r, "/categories", Category{})
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "categories", view)
}

func (a *App) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	color := strings.TrimSpace(r.FormValue("color"))
	if _, err := a.store.CreateCategory(r.Context(), name, color); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/categories?m=saved", http.StatusSeeOther)
}

func (a *App) handleCategoryEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	editing, err := a.store.GetCategory(r.Context(), id)
	if err != nil {
		a.renderError(w, err)
		return
	}
	view, err := a.categoriesView(r, "/categories/"+id, editing)
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "categories", view)
}

func (a *App) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	name := strings.TrimSpace(r.FormValue("name"))
	color := strings.TrimSpace(r.FormValue("color"))
	if err := a.store.UpdateCategory(r.Context(), id, name, color); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/categories?m=saved", http.StatusSeeOther)
}

func (a *App) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/categories?m=deleted", http.StatusSeeOther)
}

// =============================================================================
// Wallets
// =============================================================================

type walletsView struct {
	baseView
	FormAction     string
	Editing        Wallet
	EditingBalance string
	Wallets        []Wallet
}

func (a *App) walletsView(r *http.Request, formAction string, editing Wallet, editingBalance string) (*walletsView, error) {
	wallets, err := a.store.ListWallets(r.Context())
	if err != nil {
		return nil, err
	}
	return &walletsView{
		baseView:       baseView{Title: "Wallets", Authed: true, Modals: modalsFor(r)},
		FormAction:     formAction,
		Editing:        editing,
		EditingBalance: editingBalance,
		Wallets:        wallets,
	}, nil
}

func (a *App) handleWallets(w http.ResponseWriter, r *http.Request) {
	view, err := a.walletsView(r, "/wallets", Wallet{}, "")
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "wallets", view)
}

func (a *App) handleWalletCreate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	balance, err := ParseAmount(r.FormValue("balance"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	if _, err := a.store.CreateWallet(r.Context(), name, balance); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/wallets?m=saved", http.StatusSeeOther)
}

func (a *App) handleWalletEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	wallets, err := a.store.ListWallets(r.Context())
	if err != nil {
		a.renderError(w, err)
		return
	}
	var editing Wallet
	for _, wal := range wallets {
		if wal.ID == id {
			editing = wal
			break
		}
	}
	view, err := a.walletsView(r, "/wallets/"+id, editing, FormatAmount(editing.BalanceCents))
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "wallets", view)
}

func (a *App) handleWalletUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	name := strings.TrimSpace(r.FormValue("name"))
	balance, err := ParseAmount(r.FormValue("balance"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	if err := a.store.UpdateWallet(r.Context(), id, name, balance); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/wallets?m=saved", http.StatusSeeOther)
}

func (a *App) handleWalletDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteWallet(r.Context(), r.PathValue("id")); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/wallets?m=deleted", http.StatusSeeOther)
}

// =============================================================================
// Transactions
// =============================================================================

type transactionsView struct {
	baseView
	FormAction    string
	Editing       Transaction
	EditingAmount string
	EditingIncome bool
	Wallets       []Wallet
	Categories    []Category
	Transactions  []Transaction
}

func (a *App) transactionsView(r *http.Request, formAction string, editing Transaction, editingAmount string) (*transactionsView, error) {
	wallets, err := a.store.ListWallets(r.Context())
	if err != nil {
		return nil, err
	}
	categories, err := a.store.ListCategories(r.Context())
	if err != nil {
		return nil, err
	}
	txns, err := a.store.ListTransactions(r.Context())
	if err != nil {
		return nil, err
	}
	return &transactionsView{
		baseView:      baseView{Title: "Transactions", Authed: true, Modals: modalsFor(r)},
		FormAction:    formAction,
		Editing:       editing,
		EditingAmount: editingAmount,
		EditingIncome: editing.AmountCents > 0,
		Wallets:       wallets,
		Categories:    categories,
		Transactions:  txns,
	}, nil
}

func (a *App) handleTransactions(w http.ResponseWriter, r *http.Request) {
	view, err := a.transactionsView(r, "/transactions", Transaction{}, "")
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "transactions", view)
}

// signedAmount applies the transaction type to the entered magnitude:
// expenses are stored negative.
func signedAmount(r *http.Request) (int64, error) {
	amount, err := ParseAmount(r.FormValue("amount"))
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		amount = -amount
	}
	if r.FormValue("type") != "income" {
		amount = -amount
	}
	return amount, nil
}

func (a *App) handleTransactionCreate(w http.ResponseWriter, r *http.Request) {
	amount, err := signedAmount(r)
	if err != nil {
		a.renderError(w, err)
		return
	}
	_, err = a.store.CreateTransaction(r.Context(),
		r.FormValue("wallet_id"), r.FormValue("category_id"), amount, strings.TrimSpace(r.FormValue("note")))
	if err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/transactions?m=saved", http.StatusSeeOther)
}

func (a *App) handleTransactionEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	editing, err := a.store.GetTransaction(r.Context(), id)
	if err != nil {
		a.renderError(w, err)
		return
	}
	magnitude := editing.AmountCents
	if magnitude < 0 {
		magnitude = -magnitude
	}
	view, err := a.transactionsView(r, "/transactions/"+id, editing, FormatAmount(magnitude))
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "transactions", view)
}

func (a *App) handleTransactionUpdate(w http.ResponseWriter, r *http.Request) {
	amount, err := signedAmount(r)
	if err != nil {
		a.renderError(w, err)
		return
	}
	if err := a.store.UpdateTransaction(r.Context(), r.PathValue("id"), amount, strings.TrimSpace(r.FormValue("note"))); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/transactions?m=saved", http.StatusSeeOther)
}

func (a *App) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/transactions?m=deleted", http.StatusSeeOther)
}

// =============================================================================
// Budgets
// =============================================================================

type budgetsView struct {
	baseView
	FormAction   string
	Editing      Budget
	EditingLimit string
	Categories   []Category
	Budgets      []Budget
}

func (a *App) budgetsView(r *http.Request, formAction string, editing Budget, editingLimit string) (*budgetsView, error) {
	categories, err := a.store.ListCategories(r.Context())
	if err != nil {
		return nil, err
	}
	budgets, err := a.store.ListBudgets(r.Context())
	if err != nil {
		return nil, err
	}
	return &budgetsView{
		baseView:     baseView{Title: "Budgets", Authed: true, Modals: modalsFor(r)},
		FormAction:   formAction,
		Editing:      editing,
		EditingLimit: editingLimit,
		Categories:   categories,
		Budgets:      budgets,
	}, nil
}

func (a *App) handleBudgets(w http.ResponseWriter, r *http.Request) {
	view, err := a.budgetsView(r, "/budgets", Budget{}, "")
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "budgets", view)
}

func (a *App) handleBudgetCreate(w http.ResponseWriter, r *http.Request) {
	limit, err := ParseAmount(r.FormValue("limit"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	_, err = a.store.CreateBudget(r.Context(), r.FormValue("category_id"), limit, r.FormValue("note"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/budgets?m=saved", http.StatusSeeOther)
}

func (a *App) handleBudgetEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	budgets, err := a.store.ListBudgets(r.Context())
	if err != nil {
		a.renderError(w, err)
		return
	}
	var editing Budget
	for _, b := range budgets {
		if b.ID == id {
			editing = b
			break
		}
	}
	view, err := a.budgetsView(r, "/budgets/"+id, editing, FormatAmount(editing.LimitCents))
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "budgets", view)
}

func (a *App) handleBudgetUpdate(w http.ResponseWriter, r *http.Request) {
	limit, err := ParseAmount(r.FormValue("limit"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	if err := a.store.UpdateBudget(r.Context(), r.PathValue("id"), limit, r.FormValue("note")); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/budgets?m=saved", http.StatusSeeOther)
}

func (a *App) handleBudgetDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteBudget(r.Context(), r.PathValue("id")); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/budgets?m=deleted", http.StatusSeeOther)
}
