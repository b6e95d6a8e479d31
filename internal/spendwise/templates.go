package spendwise

import (
	"html/template"
)

// Templates are kept inline: the fixture app is a single self-contained
// surface and the suite pins its locators to the data-testid attributes
// below, not to tree positions.
const pageTemplates = `
{{define "layout_head"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>SpendWise — {{.Title}}</title></head>
<body>
{{if .Authed}}<nav id="main-nav">
  <a id="nav-dashboard" href="/">Dashboard</a>
  <a id="nav-categories" href="/categories">Categories</a>
  <a id="nav-wallets" href="/wallets">Wallets</a>
  <a id="nav-transactions" href="/transactions">Transactions</a>
  <a id="nav-budgets" href="/budgets">Budgets</a>
  <a id="nav-logout" href="/logout">Log out</a>
</nav>{{end}}
<main>{{end}}

{{define "layout_foot"}}</main>
{{template "modals" .}}
</body>
</html>{{end}}

{{define "modals"}}{{if .Modals}}<div id="modal-root">
{{range $i, $m := .Modals}}<div class="modal" data-testid="modal"{{if $i}} hidden{{end}}>
  <p class="modal-message">{{$m}}</p>
  <button type="button" class="modal-ok" data-testid="confirm-ok">OK</button>
</div>
{{end}}</div>
<script>
(function () {
  var root = document.getElementById('modal-root');
  root.addEventListener('click', function (ev) {
    if (!ev.target.matches('[data-testid=confirm-ok]')) { return; }
    var modal = ev.target.closest('.modal');
    modal.parentNode.removeChild(modal);
    var next = root.querySelector('.modal[hidden]');
    if (next) {
      setTimeout(function () { next.removeAttribute('hidden'); }, 120);
    }
  });
})();
</script>{{end}}{{end}}

{{define "login"}}{{template "layout_head" .}}
<h1 id="login-heading">Sign in to SpendWise</h1>
{{if .LoginError}}<p class="login-error" role="alert">{{.LoginError}}</p>{{end}}
<form method="post" action="/login" id="login-form">
  <label>Email <input type="email" id="login-email" name="email" value=""></label>
  <label>Password <input type="password" id="login-password" name="password"></label>
  <button type="submit" data-testid="login-submit">Sign in</button>
</form>
{{template "layout_foot" .}}{{end}}

{{define "dashboard"}}{{template "layout_head" .}}
<h1 id="dashboard-heading">Dashboard</h1>
<ul id="dashboard-summary">
  <li data-testid="summary-categories">Categories: {{.CategoryCount}}</li>
  <li data-testid="summary-wallets">Wallets: {{.WalletCount}}</li>
  <li data-testid="summary-transactions">Transactions: {{.TransactionCount}}</li>
  <li data-testid="summary-budgets">Budgets: {{.BudgetCount}}</li>
</ul>
{{if .CanExport}}<form method="post" action="/export">
  <button type="submit" data-testid="export-csv">Export transactions CSV</button>
</form>{{end}}
{{template "layout_foot" .}}{{end}}

{{define "export"}}{{template "layout_head" .}}
<h1 id="export-heading">Export complete</h1>
<p>Your transactions were exported to
  <a data-testid="export-url" href="{{.ExportURL}}">{{.ExportURL}}</a></p>
{{template "layout_foot" .}}{{end}}

{{define "categories"}}{{template "layout_head" .}}
<h1 id="categories-heading">Categories</h1>
<form method="post" action="{{.FormAction}}" id="category-form">
  <label>Name <input id="category-name" name="name" value="{{.Editing.Name}}"></label>
  <label>Color <input id="category-color" name="color" value="{{.Editing.Color}}"></label>
  <button type="submit" data-testid="save-category">Save category</button>
</form>
<table data-testid="category-table">
  <tbody>
  {{range .Categories}}<tr data-testid="category-row" data-name="{{.Name}}">
    <td data-testid="category-name">{{.Name}}</td>
    <td data-testid="category-color">{{.Color}}</td>
    <td>
      <a data-testid="edit-category" href="/categories/{{.ID}}/edit">Edit</a>
      <form method="post" action="/categories/{{.ID}}/delete" class="inline">
        <button type="submit" data-testid="delete-category">Delete</button>
      </form>
    </td>
  </tr>
  {{end}}</tbody>
</table>
{{template "layout_foot" .}}{{end}}

{{define "wallets"}}{{template "layout_head" .}}
<h1 id="wallets-heading">Wallets</h1>
<form method="post" action="{{.FormAction}}" id="wallet-form">
  <label>Name <input id="wallet-name-input" name="name" value="{{.Editing.Name}}"></label>
  <label>Balance <input id="wallet-balance" name="balance" value="{{.EditingBalance}}"></label>
  <button type="submit" data-testid="save-wallet">Save wallet</button>
</form>
<table data-testid="wallet-table">
  <tbody>
  {{range .Wallets}}<tr data-testid="wallet-row" data-name="{{.Name}}">
    <td data-testid="wallet-name">{{.Name}}</td>
    <td data-testid="wallet-balance">{{formatAmount .BalanceCents}}</td>
    <td>
      <a data-testid="edit-wallet" href="/wallets/{{.ID}}/edit">Edit</a>
      <form method="post" action="/wallets/{{.ID}}/delete" class="inline">
        <button type="submit" data-testid="delete-wallet">Delete</button>
      </form>
    </td>
  </tr>
  {{end}}</tbody>
</table>
{{template "layout_foot" .}}{{end}}

{{define "transactions"}}{{template "layout_head" .}}
<h1 id="transactions-heading">Transactions</h1>
<form method="post" action="{{.FormAction}}" id="transaction-form">
  <label>Amount <input id="txn-amount-input" name="amount" value="{{.EditingAmount}}"></label>
  <label>Type <select id="txn-type" name="type">
    <option value="expense" {{if not .EditingIncome}}selected{{end}}>Expense</option>
    <option value="income" {{if .EditingIncome}}selected{{end}}>Income</option>
  </select></label>
  <label>Wallet <select id="txn-wallet" name="wallet_id">
    {{range .Wallets}}<option value="{{.ID}}" {{if eq .ID $.Editing.WalletID}}selected{{end}}>{{.Name}}</option>{{end}}
  </select></label>
  <label>Category <select id="txn-category" name="category_id">
    {{range .Categories}}<option value="{{.ID}}" {{if eq .ID $.Editing.CategoryID}}selected{{end}}>{{.Name}}</option>{{end}}
  </select></label>
  <label>Note <input id="txn-note" name="note" value="{{.Editing.Note}}"></label>
  <button type="submit" data-testid="save-txn">Save transaction</button>
</form>
<table data-testid="txn-table">
  <tbody>
  {{range .Transactions}}<tr data-testid="txn-row">
    <td data-testid="txn-wallet">{{.WalletName}}</td>
    <td data-testid="txn-category">{{.CategoryName}}</td>
    <td data-testid="txn-amount">{{formatAmount .AmountCents}}</td>
    <td data-testid="txn-note">{{.Note}}</td>
    <td>
      <a data-testid="edit-txn" href="/transactions/{{.ID}}/edit">Edit</a>
      <form method="post" action="/transactions/{{.ID}}/delete" class="inline">
        <button type="submit" data-testid="delete-txn">Delete</button>
      </form>
    </td>
  </tr>
  {{end}}</tbody>
</table>
{{template "layout_foot" .}}{{end}}

{{define "budgets"}}{{template "layout_head" .}}
<h1 id="budgets-heading">Budgets</h1>
<form method="post" action="{{.FormAction}}" id="budget-form">
  <label>Category <select id="budget-category" name="category_id">
    {{range .Categories}}<option value="{{.ID}}" {{if eq .ID $.Editing.CategoryID}}selected{{end}}>{{.Name}}</option>{{end}}
  </select></label>
  <label>Monthly limit <input id="budget-limit" name="limit" value="{{.EditingLimit}}"></label>
  <label>Note <textarea id="budget-note" name="note">{{.Editing.NoteMD}}</textarea></label>
  <button type="submit" data-testid="save-budget">Save budget</button>
</form>
<table data-testid="budget-table">
  <tbody>
  {{range .Budgets}}<tr data-testid="budget-row" data-name="{{.CategoryName}}">
    <td data-testid="budget-category">{{.CategoryName}}</td>
    <td data-testid="budget-limit">{{formatAmount .LimitCents}}</td>
    <td data-testid="budget-note">{{renderNote .NoteMD}}</td>
    <td>
      <a data-testid="edit-budget" href="/budgets/{{.ID}}/edit">Edit</a>
      <form method="post" action="/budgets/{{.ID}}/delete" class="inline">
        <button type="submit" data-testid="delete-budget">Delete</button>
      </form>
    </td>
  </tr>
  {{end}}</tbody>
</table>
{{template "layout_foot" .}}{{end}}
`

func parseTemplates() (*template.Template, error) {
	return template.New("spendwise").Funcs(template.FuncMap{
		"formatAmount": FormatAmount,
		"renderNote":   RenderNote,
	}).Parse(pageTemplates)
}
