package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/voltrak-labs/showroom/pkg/models"
)

// renderList writes items as a table. items is a slice of one record type.
func renderList(out io.Writer, items interface{}) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	switch list := items.(type) {
	case []models.Product:
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tTAGLINE")
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", id(p.ID), p.Name, p.Category, string(p.Price), truncate(p.Tagline, 40))
		}
	case []models.QnA:
		fmt.Fprintln(w, "ID\tQUESTION\tANSWER")
		for _, q := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", id(q.ID), truncate(q.Question, 50), truncate(q.Answer, 50))
		}
	case []models.Award:
		fmt.Fprintln(w, "ID\tIMAGE_URL")
		for _, a := range list {
			fmt.Fprintf(w, "%s\t%s\n", id(a.ID), a.ImageURL)
		}
	case []models.MediaItem:
		fmt.Fprintln(w, "ID\tURL")
		for _, m := range list {
			fmt.Fprintf(w, "%s\t%s\n", id(m.ID), m.URL)
		}
	case []models.Request:
		fmt.Fprintln(w, "ID\tTYPE\tPRODUCT\tNAME\tEMAIL\tPHONE\tQTY\tCREATED")
		for _, r := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
				id(r.ID), r.RequestType, r.ProductName, r.FullName, r.Email, r.PhoneNumber, r.Quantity, r.CreatedAt)
		}
	case []models.Application:
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPOSITION\tCREATED")
		for _, a := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", id(a.ID), a.Name, a.Email, a.Position, a.CreatedAt)
		}
	case []models.Blog:
		fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tPUBLISHED")
		for _, b := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id(b.ID), truncate(b.Title, 50), b.Author, b.PublicationDate)
		}
	default:
		fmt.Fprintf(w, "%v\n", items)
	}
}

// listLen returns the length of a record slice, 0 for anything else.
func listLen(items interface{}) int {
	switch list := items.(type) {
	case []models.Product:
		return len(list)
	case []models.QnA:
		return len(list)
	case []models.Award:
		return len(list)
	case []models.MediaItem:
		return len(list)
	case []models.Request:
		return len(list)
	case []models.Application:
		return len(list)
	case []models.Blog:
		return len(list)
	}
	return 0
}

// renderRecord writes v as YAML with fields in wire order.
func renderRecord(out io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// JSON is YAML; decoding into a node keeps key order.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	plain(&node)
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

// plain drops the flow and quoting styles the JSON input carried.
func plain(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		plain(child)
	}
}

func renderSpecifications(out io.Writer, specs models.Specifications) {
	for _, sec := range specs {
		fmt.Fprintf(out, "  %s\n", sec.Title())
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, row := range sec.Rows {
			fmt.Fprintf(w, "    %s\t%s\n", row.Label(), row.Value)
		}
		w.Flush()
	}
}

func id(p *int64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatInt(*p, 10)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
