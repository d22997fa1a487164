package storage

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/thdiaman/OntologyAPI/errors"
	"github.com/thdiaman/OntologyAPI/metric"
	"github.com/thdiaman/OntologyAPI/ontology"
	"github.com/thdiaman/OntologyAPI/vocabulary"
)

// Record type tags of the triple document format.
const (
	tagClass  = "class"
	tagInd    = "ind"
	tagRel    = "rel"
	tagString = "str"
	tagNumber = "num"
)

// escapeIRI and unescapeIRI protect the field and line structure of the
// document. Identifiers that already carry the namespace pass through
// Qualify unsanitized, so a stored IRI may contain spaces or newlines;
// percent-escaping those characters keeps every identifier representable
// and the round trip lossless.
var (
	escapeIRI   = strings.NewReplacer("%", "%25", " ", "%20", "\t", "%09", "\r", "%0D", "\n", "%0A")
	unescapeIRI = strings.NewReplacer("%20", " ", "%09", "\t", "%0D", "\r", "%0A", "\n", "%25", "%")
)

// encode writes the full store state to w: class declarations, then
// individual memberships, then facts, each section in insertion order.
func encode(w io.Writer, store *ontology.Store) error {
	bw := bufio.NewWriter(w)

	for _, class := range store.Classes() {
		fmt.Fprintf(bw, "%s %s\n", tagClass, escapeIRI.Replace(class))
	}
	for _, ind := range store.Individuals() {
		for _, class := range ind.Classes {
			fmt.Fprintf(bw, "%s %s %s\n",
				tagInd, escapeIRI.Replace(ind.ID), escapeIRI.Replace(class))
		}
	}
	for _, f := range store.Facts() {
		subject := escapeIRI.Replace(f.Subject)
		predicate := escapeIRI.Replace(f.Predicate)
		switch f.Object.Kind {
		case ontology.KindIRI:
			fmt.Fprintf(bw, "%s %s %s %s\n",
				tagRel, subject, predicate, escapeIRI.Replace(f.Object.IRI))
		case ontology.KindString:
			fmt.Fprintf(bw, "%s %s %s %s\n",
				tagString, subject, predicate, strconv.Quote(f.Object.Str))
		case ontology.KindFloat:
			fmt.Fprintf(bw, "%s %s %s %s\n",
				tagNumber, subject, predicate,
				strconv.FormatFloat(f.Object.Float, 'g', -1, 64))
		}
	}

	return bw.Flush()
}

// decode reads a triple document and materializes a store for ns. Record
// order inside the document is authoritative: classes must precede the
// individuals that use them, individuals the facts that reference them.
// encode emits sections in exactly that order.
func decode(
	r io.Reader, ns vocabulary.Namespace, metrics *metric.Metrics, logger *slog.Logger,
) (*ontology.Store, error) {
	store := ontology.NewStore(ns, metrics, logger)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := decodeLine(store, line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return store, nil
}

func decodeLine(store *ontology.Store, line string) error {
	fields := strings.SplitN(line, " ", 2)
	tag := fields[0]

	switch tag {
	case tagClass:
		if len(fields) != 2 {
			return badRecord(tag, line)
		}
		store.DefineClass(unescapeIRI.Replace(fields[1]))
		return nil

	case tagInd:
		id, class, ok := splitTwo(fields)
		if !ok {
			return badRecord(tag, line)
		}
		return store.AddIndividual(unescapeIRI.Replace(class), unescapeIRI.Replace(id))

	case tagRel:
		subject, predicate, object, ok := splitThree(fields)
		if !ok {
			return badRecord(tag, line)
		}
		return store.AddRelation(
			unescapeIRI.Replace(subject), unescapeIRI.Replace(predicate), unescapeIRI.Replace(object))

	case tagString:
		subject, predicate, quoted, ok := splitThree(fields)
		if !ok {
			return badRecord(tag, line)
		}
		value, err := strconv.Unquote(quoted)
		if err != nil {
			return badRecord(tag, line)
		}
		return store.AddStringProperty(
			unescapeIRI.Replace(subject), unescapeIRI.Replace(predicate), value)

	case tagNumber:
		subject, predicate, raw, ok := splitThree(fields)
		if !ok {
			return badRecord(tag, line)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRecord(tag, line)
		}
		return store.AddFloatProperty(
			unescapeIRI.Replace(subject), unescapeIRI.Replace(predicate), value)

	default:
		return badRecord(tag, line)
	}
}

func badRecord(tag, line string) error {
	return fmt.Errorf("bad %q record %q: %w", tag, line, errors.ErrInvalidData)
}

// splitTwo splits the payload of a two-field record.
func splitTwo(fields []string) (a, b string, ok bool) {
	if len(fields) != 2 {
		return "", "", false
	}
	parts := strings.SplitN(fields[1], " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// splitThree splits the payload of a three-field record. The third field
// may itself contain spaces (quoted string literals), so only the first
// two splits are taken.
func splitThree(fields []string) (a, b, c string, ok bool) {
	if len(fields) != 2 {
		return "", "", "", false
	}
	parts := strings.SplitN(fields[1], " ", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
