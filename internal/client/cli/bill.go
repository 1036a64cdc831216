package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/posadmin/internal/client/billing"
	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/dmitrijs2005/posadmin/internal/filex"
)

// Bill prints the bill of a sale and, when pdfPath is set, also saves it as
// a PDF document.
func (a *App) Bill(ctx context.Context, saleID, pdfPath string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	b, err := a.bills.Build(ctx, models.ID(saleID))
	if err != nil {
		return err
	}
	if err := billing.WriteText(a.out, b); err != nil {
		return err
	}

	if pdfPath == "" {
		return nil
	}
	doc, err := billing.RenderPDF(b)
	if err != nil {
		return fmt.Errorf("render bill: %w", err)
	}
	path, err := filex.EnsureParentDir(pdfPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		return fmt.Errorf("save bill: %w", err)
	}
	fmt.Fprintf(a.out, "Bill saved to %s\n", path)
	return nil
}
