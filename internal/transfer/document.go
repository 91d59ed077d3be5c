// Package transfer moves the full ledger state in and out of JSON export
// documents and manages dated backup files.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/ledger"
	"github.com/Veraticus/spendwise/internal/model"
)

// ExportDateLayout matches JavaScript's Date.toISOString output.
const ExportDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Source provides the state to export.
type Source interface {
	Snapshot() ledger.Snapshot
}

// Target receives imported state.
type Target interface {
	Source
	Restore(ctx context.Context, snap ledger.Snapshot) error
}

// Document is the export file format. Fields encode in this order.
type Document struct {
	Expenses   []model.Expense `json:"expenses"`
	Budgets    model.Budgets   `json:"budgets"`
	Goals      []model.Goal    `json:"goals"`
	Settings   model.Settings  `json:"settings"`
	ExportDate string          `json:"exportDate"`
}

// Export captures every collection of src.
func Export(src Source, now time.Time) Document {
	snap := src.Snapshot()
	doc := Document{
		Expenses:   snap.Expenses,
		Budgets:    snap.Budgets,
		Goals:      snap.Goals,
		Settings:   snap.Settings,
		ExportDate: now.UTC().Format(ExportDateLayout),
	}
	if doc.Expenses == nil {
		doc.Expenses = []model.Expense{}
	}
	if doc.Goals == nil {
		doc.Goals = []model.Goal{}
	}
	if doc.Budgets == nil {
		doc.Budgets = model.Budgets{}
	}
	return doc
}

// Write encodes doc with two-space indentation.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// Filename returns the conventional export file name for now.
func Filename(now time.Time) string {
	return BackupName(now) + ".json"
}

// Patch is a parsed import document. Nil fields were absent or null.
type Patch struct {
	Budgets  model.Budgets
	Expenses []model.Expense
	Goals    []model.Goal
	settings json.RawMessage
}

// HasSettings reports whether the document carried settings.
func (p Patch) HasSettings() bool {
	return p.settings != nil
}

// Parse decodes an import document. Each top-level field is optional and
// unknown fields are ignored; anything that is not a JSON object, or whose
// fields have the wrong shape, fails with common.ErrInvalidDocument.
func Parse(r io.Reader) (Patch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Patch{}, fmt.Errorf("failed to read import: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}
	if fields == nil {
		return Patch{}, fmt.Errorf("%w: document must be a JSON object", common.ErrInvalidDocument)
	}

	var p Patch
	if err := decodeField(fields, "expenses", &p.Expenses); err != nil {
		return Patch{}, err
	}
	if err := decodeField(fields, "budgets", &p.Budgets); err != nil {
		return Patch{}, err
	}
	if err := decodeField(fields, "goals", &p.Goals); err != nil {
		return Patch{}, err
	}

	if raw, ok := fields["settings"]; ok && !isNull(raw) {
		var probe model.Settings
		if err := json.Unmarshal(raw, &probe); err != nil {
			return Patch{}, fmt.Errorf("%w: settings: %v", common.ErrInvalidDocument, err)
		}
		p.settings = raw
	}

	return p, nil
}

func decodeField(fields map[string]json.RawMessage, name string, dst any) error {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrInvalidDocument, name, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Apply builds the state that results from importing p over current.
// Present collections replace their counterpart; settings merge key by key.
func (p Patch) Apply(current ledger.Snapshot) (ledger.Snapshot, error) {
	next := current
	if p.Expenses != nil {
		next.Expenses = p.Expenses
	}
	if p.Budgets != nil {
		next.Budgets = p.Budgets
	}
	if p.Goals != nil {
		next.Goals = p.Goals
	}
	if p.settings != nil {
		merged := current.Settings
		if err := json.Unmarshal(p.settings, &merged); err != nil {
			return ledger.Snapshot{}, fmt.Errorf("%w: settings: %v", common.ErrInvalidDocument, err)
		}
		next.Settings = merged
	}
	return next, nil
}

// Result describes what an import replaced.
type Result struct {
	Expenses int
	Goals    int
	Budgets  bool
	Settings bool
}

// Import parses r fully and then restores the merged state into dst.
// A document that fails to parse leaves dst untouched.
func Import(ctx context.Context, dst Target, r io.Reader) (Result, error) {
	patch, err := Parse(r)
	if err != nil {
		return Result{}, err
	}

	next, err := patch.Apply(dst.Snapshot())
	if err != nil {
		return Result{}, err
	}
	if err := dst.Restore(ctx, next); err != nil {
		return Result{}, err
	}

	return Result{
		Expenses: len(next.Expenses),
		Goals:    len(next.Goals),
		Budgets:  patch.Budgets != nil,
		Settings: patch.HasSettings(),
	}, nil
}
