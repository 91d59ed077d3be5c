// Package ofx turns OFX/QFX bank and card statements into expense drafts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/spendwise/internal/model"
	"github.com/aclindsa/ofxgo"
)

// refPrefix marks the notes of an expense imported from a statement.
const refPrefix = "ofx:"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Entry is one debit from a statement.
type Entry struct {
	FITID     string
	AccountID string
	Draft     model.ExpenseDraft
}

// Ref returns the marker stored in the notes of the imported expense.
func (e Entry) Ref() string {
	return refPrefix + e.AccountID + "/" + e.FITID
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes drop the closing bracket of a bare opening tag
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile reads a statement and returns its debits in statement order.
// Credits, deposits and zero amounts are skipped.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []Entry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			entries = append(entries, p.convert(stmt.BankTranList.Transactions,
				string(stmt.BankAcctFrom.AcctID), model.PaymentNetBanking)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			entries = append(entries, p.convert(stmt.BankTranList.Transactions,
				string(stmt.CCAcctFrom.AcctID), model.PaymentCard)...)
		}
	}

	slog.Info("Parsed OFX file",
		"debits", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func (p *Parser) convert(txns []ofxgo.Transaction, accountID string, method model.PaymentMethod) []Entry {
	var entries []Entry
	for _, tx := range txns {
		amount, _ := tx.TrnAmt.Float64()
		if amount >= 0 {
			continue
		}

		kind := fmt.Sprintf("%v", tx.TrnType)
		draft := model.ExpenseDraft{
			Amount:        -amount,
			Description:   p.extractMerchantName(tx),
			Category:      categoryFor(kind),
			Date:          model.DateOf(tx.DtPosted.Time),
			PaymentMethod: method,
		}
		if kind == "ATM" || kind == "CASH" {
			draft.PaymentMethod = model.PaymentCash
		}
		if draft.Description == "" {
			draft.Description = kind
		}

		entry := Entry{
			FITID:     string(tx.FiTID),
			AccountID: accountID,
			Draft:     draft,
		}
		entry.Draft.Notes = entry.Ref()
		entries = append(entries, entry)
	}
	return entries
}

// categoryFor maps the OFX transaction type to a category. OFX carries no
// merchant category, so everything else lands in other.
func categoryFor(kind string) model.Category {
	switch kind {
	case "FEE", "SRVCHG":
		return model.CategoryBills
	default:
		return model.CategoryOther
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " posting date
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// SkipImported drops entries whose reference already appears in the notes
// of an existing expense and reports how many were dropped.
func SkipImported(existing []model.Expense, entries []Entry) ([]Entry, int) {
	seen := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		if strings.HasPrefix(e.Notes, refPrefix) {
			seen[e.Notes] = struct{}{}
		}
	}

	fresh := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.Ref()]; ok {
			continue
		}
		seen[entry.Ref()] = struct{}{}
		fresh = append(fresh, entry)
	}
	return fresh, len(entries) - len(fresh)
}
