// Command go-sqlite reads SQLite database files: header and schema
// information, page inspection, and single-table SELECT queries.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	gosqlite "github.com/wilhasse/go-sqlite"
	"github.com/wilhasse/go-sqlite/column"
	"github.com/wilhasse/go-sqlite/internal/logging"
	"github.com/wilhasse/go-sqlite/record"
)

// CLI defines the command-line interface.
type CLI struct {
	Path    string   `arg:"" type:"existingfile" help:"Database file, raw or xz-compressed"`
	Command string   `arg:"" help:"One of .dbinfo, .tables, .schema, .page N, or a SELECT statement"`
	Args    []string `arg:"" optional:"" passthrough:"" help:"Command arguments; SELECT words may also be passed unquoted, flags go before the path"`

	Format               string `name:"format" short:"f" enum:"text,json" default:"text" help:"Output format: text or json"`
	IgnoreConditions     bool   `name:"ignore-conditions" help:"Parse WHERE conditions but project every row"`
	RawIntegerPrimaryKey bool   `name:"raw-rowid" help:"Show the stored NULL of INTEGER PRIMARY KEY columns instead of the row id"`
	LogLevel             string `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Log level"`
	LogFormat            string `name:"log-format" enum:"text,json" default:"text" help:"Log format"`
}

func main() {
	var cli CLI
	parser := newParser(&cli)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(run(&cli, os.Stdout, os.Stderr))
}

func newParser(cli *CLI, options ...kong.Option) *kong.Kong {
	return kong.Must(cli, append([]kong.Option{
		kong.Name("go-sqlite"),
		kong.Description("Read-only SQLite database file reader"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}, options...)...)
}

func run(cli *CLI, stdout, stderr io.Writer) error {
	logger := logging.InitLogger(logging.ParseLevel(cli.LogLevel), logging.ParseFormat(cli.LogFormat), stderr)

	db, err := gosqlite.Open(cli.Path, &gosqlite.Config{
		IgnoreConditions:     cli.IgnoreConditions,
		RawIntegerPrimaryKey: cli.RawIntegerPrimaryKey,
		Logger:               logger,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	out := &output{w: stdout, json: cli.Format == "json"}
	switch strings.ToLower(cli.Command) {
	case ".dbinfo":
		return dbInfo(db, out)
	case ".tables":
		return tables(db, out)
	case ".schema":
		return showSchema(db, out)
	case ".page":
		if len(cli.Args) != 1 {
			return fmt.Errorf(".page takes one page number")
		}
		n, err := strconv.Atoi(cli.Args[0])
		if err != nil {
			return fmt.Errorf("invalid page number %q", cli.Args[0])
		}
		return showPage(db, n, out)
	}
	if strings.HasPrefix(cli.Command, ".") {
		return fmt.Errorf("unknown command %s", cli.Command)
	}
	return query(db, strings.Join(append([]string{cli.Command}, cli.Args...), " "), out)
}

type output struct {
	w    io.Writer
	json bool
}

func (o *output) encode(v interface{}) error {
	encoder := json.NewEncoder(o.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// dbInfo prints the page size and the number of tables. Only CREATE TABLE
// rows of the schema count; indexes, views and triggers do not.
func dbInfo(db *gosqlite.DB, out *output) error {
	hdr := db.Header()
	if out.json {
		return out.encode(map[string]interface{}{
			"page_size":      hdr.PageSize,
			"page_count":     hdr.PageCount,
			"reserved_space": hdr.ReservedSpace,
			"text_encoding":  hdr.TextEncoding.String(),
			"schema_cookie":  hdr.SchemaCookie,
			"user_version":   hdr.UserVersion,
			"application_id": hdr.ApplicationID,
			"version_number": hdr.VersionNumber,
			"tables":         db.Catalog().Len(),
		})
	}
	fmt.Fprintf(out.w, "database page size: %d\n", hdr.PageSize)
	fmt.Fprintf(out.w, "number of tables: %d\n", db.Catalog().Len())
	return nil
}

func tables(db *gosqlite.DB, out *output) error {
	names := db.Tables()
	if out.json {
		return out.encode(names)
	}
	fmt.Fprintln(out.w, strings.Join(names, " "))
	return nil
}

func showSchema(db *gosqlite.DB, out *output) error {
	defs := db.Catalog().Tables()
	if out.json {
		type columnJSON struct {
			Name       string `json:"name"`
			Type       string `json:"type"`
			PrimaryKey bool   `json:"primary_key,omitempty"`
			RowIDAlias bool   `json:"rowid_alias,omitempty"`
			NotNull    bool   `json:"not_null,omitempty"`
		}
		type tableJSON struct {
			Name     string       `json:"name"`
			RootPage int          `json:"root_page"`
			SQL      string       `json:"sql"`
			Columns  []columnJSON `json:"columns"`
		}
		result := make([]tableJSON, 0, len(defs))
		for _, def := range defs {
			t := tableJSON{Name: def.Name, RootPage: def.RootPage, SQL: def.SQL}
			for _, c := range def.Columns {
				t.Columns = append(t.Columns, columnJSON{Name: c.Name, Type: c.Type,
					PrimaryKey: c.PrimaryKey, RowIDAlias: c.RowIDAlias, NotNull: c.NotNull})
			}
			result = append(result, t)
		}
		return out.encode(result)
	}
	for _, def := range defs {
		fmt.Fprintf(out.w, "%s;\n", def.SQL)
	}
	return nil
}

func showPage(db *gosqlite.DB, number int, out *output) error {
	p, err := db.Page(number)
	if err != nil {
		return err
	}
	var recs []*record.Record
	if p.IsTable() {
		if recs, err = record.Walk(p, 0); err != nil {
			return err
		}
	}

	if out.json {
		cells := make([]map[string]interface{}, len(p.CellOffsets))
		for i, off := range p.CellOffsets {
			cells[i] = map[string]interface{}{"offset": off}
			if recs != nil {
				cells[i]["rowid"] = recs[i].RowID
				cells[i]["columns"] = len(recs[i].Values)
			}
		}
		return out.encode(map[string]interface{}{
			"page_number":    p.Number(),
			"page_type":      uint8(p.Type),
			"page_type_name": p.Type.String(),
			"cells":          cells,
			"content_start":  p.CellContentStart,
			"freeblock":      p.FirstFreeblock,
			"fragmented":     p.FragmentedBytes,
			"free_bytes":     p.FreeBytes(),
			"blake3":         p.Digest(),
		})
	}

	fmt.Fprintf(out.w, "=== Page %d ===\n", p.Number())
	fmt.Fprintf(out.w, "  Page Type:     %s (0x%02x)\n", p.Type, uint8(p.Type))
	fmt.Fprintf(out.w, "  Cells:         %d\n", len(p.CellOffsets))
	fmt.Fprintf(out.w, "  Content Start: %d\n", p.CellContentStart)
	fmt.Fprintf(out.w, "  Freeblock:     %d\n", p.FirstFreeblock)
	fmt.Fprintf(out.w, "  Fragmented:    %d bytes\n", p.FragmentedBytes)
	fmt.Fprintf(out.w, "  Free:          %d bytes\n", p.FreeBytes())
	fmt.Fprintf(out.w, "  BLAKE3:        %s\n", p.Digest())

	if len(p.CellOffsets) > 0 {
		fmt.Fprintf(out.w, "\nCells:\n")
		w := tabwriter.NewWriter(out.w, 0, 0, 2, ' ', 0)
		if recs != nil {
			fmt.Fprintf(w, "  #\tOffset\tRowID\tColumns\tTypes\n")
			for i, rec := range recs {
				types := make([]string, len(rec.Header.SerialTypes))
				for j, st := range rec.Header.SerialTypes {
					types[j] = st.String()
				}
				fmt.Fprintf(w, "  %d\t%d\t%d\t%d\t%s\n", i, p.CellOffsets[i], rec.RowID, len(rec.Values), strings.Join(types, " "))
			}
		} else {
			fmt.Fprintf(w, "  #\tOffset\n")
			for i, off := range p.CellOffsets {
				fmt.Fprintf(w, "  %d\t%d\n", i, off)
			}
		}
		w.Flush()
	}
	return nil
}

func query(db *gosqlite.DB, sql string, out *output) error {
	rows, err := db.Query(sql)
	if err != nil {
		return err
	}
	if out.json {
		result, err := rows.Collect()
		if err != nil {
			return err
		}
		if result == nil {
			result = [][]column.Value{}
		}
		return out.encode(map[string]interface{}{
			"columns": rows.Columns(),
			"rows":    result,
		})
	}
	for rows.Next() {
		vals := rows.Values()
		cells := make([]string, len(vals))
		for i, v := range vals {
			cells[i] = cellText(v)
		}
		fmt.Fprintln(out.w, strings.Join(cells, "|"))
	}
	return rows.Err()
}

// cellText renders a value the way the sqlite3 shell does: NULL is empty.
func cellText(v column.Value) string {
	if column.IsNull(v) {
		return ""
	}
	return v.String()
}
