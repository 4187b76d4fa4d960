package pipsheet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/sheet/form"
	"github.com/louisbranch/pipsheet/internal/sheet/layout"
	"github.com/louisbranch/pipsheet/internal/sheet/storage"
	"golang.org/x/text/message"
)

// console is the terminal side of the sheet: it renders fields, parses
// assignments and answers confirmation prompts from the input stream.
type console struct {
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	printer *message.Printer
	doc     layout.Document

	// input and done are set by feed for session mode.
	input <-chan string
	done  <-chan struct{}

	assumeYes  bool
	lastAnswer bool
}

func newConsole(in io.Reader, out, errOut io.Writer, printer *message.Printer, doc layout.Document) *console {
	return &console{
		in:      bufio.NewReader(in),
		out:     out,
		errOut:  errOut,
		printer: printer,
		doc:     doc,
	}
}

// Confirm asks on the terminal and decides before returning.
func (c *console) Confirm(prompt string, decide func(yes bool)) {
	yes := c.assumeYes
	if !yes {
		fmt.Fprintf(c.out, "%s %s ", prompt, c.printer.Sprintf("core.answer.hint"))
		line, _ := c.readLine()
		yes = isYes(line)
	}
	c.lastAnswer = yes
	decide(yes)
}

// readLine returns the next input line without its terminator. ok is false
// once the input is exhausted or, after feed, its context is done.
func (c *console) readLine() (string, bool) {
	if c.input == nil {
		return c.readRaw()
	}
	select {
	case line, ok := <-c.input:
		return line, ok
	case <-c.done:
		return "", false
	}
}

// feed moves input reading to a background goroutine so a blocked read
// never outlives ctx. Lines are handed over one at a time.
func (c *console) feed(ctx context.Context) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, ok := c.readRaw()
			if !ok {
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	c.input = lines
	c.done = ctx.Done()
}

func (c *console) readRaw() (string, bool) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (c *console) say(key string, args ...any) {
	fmt.Fprintln(c.out, c.printer.Sprintf(key, args...))
}

func (c *console) warn(err error) {
	fmt.Fprintf(c.errOut, "Error: %v\n", err)
}

// show prints every field grouped by layout section.
func (c *console) show(tree *form.Tree) {
	if c.doc.Title != "" {
		fmt.Fprintf(c.out, "== %s ==\n", c.doc.Title)
	}
	for _, section := range c.doc.Sections {
		heading := section.Label
		if heading == "" {
			heading = section.Name
		}
		if heading != "" {
			fmt.Fprintf(c.out, "\n%s\n", heading)
		}
		seen := map[string]int{}
		for _, def := range section.Fields {
			fields := tree.Named(def.Name)
			index := seen[def.Name]
			seen[def.Name]++
			if index >= len(fields) {
				continue
			}
			label := def.Label
			if label == "" {
				label = def.Name
			}
			field := fields[index]
			if field.Kind() == form.KindCheckbox {
				mark := c.printer.Sprintf("cli.unchecked")
				if field.Checked() {
					mark = c.printer.Sprintf("cli.checked")
				}
				fmt.Fprintf(c.out, "  %s %s\n", mark, label)
				continue
			}
			fmt.Fprintf(c.out, "  %-24s %s\n", label+":", field.Value())
		}
	}
}

// lastSaved prints when the sheet was last written, for stores that know.
func (c *console) lastSaved(ctx context.Context, store storage.BlobStore, key string) {
	stamped, ok := store.(storage.Timestamped)
	if !ok {
		return
	}
	at, found, err := stamped.UpdatedAt(ctx, key)
	if err != nil {
		log.Printf("read save time: %v", err)
		return
	}
	if found {
		c.say("cli.last_saved", at.Local().Format(time.DateTime))
	}
}

// assign applies one name=value argument as a field edit.
func (c *console) assign(tree *form.Tree, arg string) error {
	name, value, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return errors.New(c.printer.Sprintf("cli.bad_assignment", arg))
	}
	field := tree.First(name)
	if field == nil {
		return c.unknownField(name, tree.Names())
	}
	if field.Kind() == form.KindCheckbox {
		checked, ok := parseToggle(value)
		if !ok {
			return errors.New(c.printer.Sprintf("cli.bad_checkbox", name, value))
		}
		field.SetChecked(checked)
		return nil
	}
	field.SetValue(strings.TrimSpace(value))
	return nil
}

func (c *console) unknownField(name string, names []string) error {
	msg := c.printer.Sprintf("cli.unknown_field", name)
	metadata := map[string]string{"Field": name}
	if hint := suggest(name, names); hint != "" {
		msg += " (" + c.printer.Sprintf("cli.did_you_mean", hint) + ")"
		metadata["Suggestion"] = hint
	}
	return apperrors.WithMetadata(apperrors.CodeFieldUnknown, msg, metadata)
}

// suggest returns the closest candidate within the edit budget for its
// length, or "" when nothing is close.
func suggest(name string, candidates []string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return ""
	}
	type match struct {
		name string
		dist int
	}
	var matches []match
	for _, candidate := range candidates {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if dist > levenshteinLimit(len(candidate)) {
			continue
		}
		matches = append(matches, match{name: candidate, dist: dist})
	}
	if len(matches) == 0 {
		return ""
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist == matches[j].dist {
			return matches[i].name < matches[j].name
		}
		return matches[i].dist < matches[j].dist
	})
	return matches[0].name
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func parseToggle(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1", "x":
		return true, true
	case "false", "no", "off", "0", "":
		return false, true
	default:
		return false, false
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "sim":
		return true
	default:
		return false
	}
}
