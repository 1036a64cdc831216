package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/posadmin/internal/client/client"
	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/dmitrijs2005/posadmin/internal/client/repositories"
	"github.com/tidwall/gjson"
)

var errNotLoggedIn = &client.Error{
	Kind:    client.KindUnauthenticated,
	Message: client.MsgUnauthenticated + " Type 'login' first.",
}

func kindNames() []string {
	names := make([]string, 0, len(models.Kinds))
	for _, k := range models.Kinds {
		names = append(names, k.Name)
	}
	return names
}

func (a *App) collection(kind string) (repositories.Collection, error) {
	if !a.isLoggedIn() {
		return nil, errNotLoggedIn
	}
	c, ok := a.repos.ByName(kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q, expected one of: %s", kind, strings.Join(kindNames(), ", "))
	}
	return c, nil
}

// List prints every record of kind as a table. Sales are shown newest first.
func (a *App) List(ctx context.Context, kind string) error {
	c, err := a.collection(kind)
	if err != nil {
		return err
	}

	items, err := c.ListRaw(ctx)
	if err != nil {
		return err
	}
	if c.Kind() == models.KindSales {
		sortNewestFirst(items, "sales_date")
	}

	if len(items) == 0 {
		fmt.Fprintf(a.out, "No %s records.\n", kind)
		return nil
	}
	return writeTable(a.out, items)
}

// Create reads a JSON record and posts it, then lists the resource again.
func (a *App) Create(ctx context.Context, kind string) error {
	c, err := a.collection(kind)
	if err != nil {
		return err
	}

	data, err := a.readRecord(kind)
	if err != nil {
		return err
	}
	created, err := c.CreateRaw(ctx, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created %s %s\n", kind, gjson.GetBytes(created, c.Kind().IDField).String())
	return a.List(ctx, kind)
}

// Update reads a JSON record and replaces the record with id, then lists
// the resource again.
func (a *App) Update(ctx context.Context, kind, id string) error {
	c, err := a.collection(kind)
	if err != nil {
		return err
	}

	data, err := a.readRecord(kind)
	if err != nil {
		return err
	}
	if _, err := c.UpdateRaw(ctx, models.ID(id), data); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated %s %s\n", kind, id)
	return a.List(ctx, kind)
}

// Delete removes the record with id after confirmation, then lists the
// resource again.
func (a *App) Delete(ctx context.Context, kind, id string) error {
	c, err := a.collection(kind)
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s %s?", kind, id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	ack, err := c.Delete(ctx, models.ID(id))
	if err != nil {
		return err
	}
	if ack.Message != "" {
		fmt.Fprintln(a.out, ack.Message)
	} else {
		fmt.Fprintf(a.out, "Deleted %s %s\n", kind, id)
	}
	return a.List(ctx, kind)
}

func (a *App) readRecord(kind string) (json.RawMessage, error) {
	text, err := getMultiline(a.reader, fmt.Sprintf("Enter %s as JSON", kind), a.out)
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(text) || !gjson.Parse(text).IsObject() {
		return nil, fmt.Errorf("invalid %s data: expected a JSON object", kind)
	}
	return json.RawMessage(text), nil
}

// sortNewestFirst orders records by a date field, latest first. Dates are
// compared as strings, which holds for the ISO 8601 values the API returns.
func sortNewestFirst(items []json.RawMessage, field string) {
	slices.SortStableFunc(items, func(x, y json.RawMessage) int {
		return strings.Compare(gjson.GetBytes(y, field).String(), gjson.GetBytes(x, field).String())
	})
}

// writeTable prints records with the columns of the first one, in field
// order. Nested arrays are summarised by their length.
func writeTable(w io.Writer, items []json.RawMessage) error {
	var columns []string
	gjson.ParseBytes(items[0]).ForEach(func(key, _ gjson.Result) bool {
		columns = append(columns, key.String())
		return true
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t")+"\t")
	for _, it := range items {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cell(gjson.GetBytes(it, col))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}

func cell(v gjson.Result) string {
	switch {
	case !v.Exists():
		return ""
	case v.IsArray():
		return fmt.Sprintf("[%d items]", len(v.Array()))
	case v.IsObject():
		return v.Raw
	default:
		return v.String()
	}
}
