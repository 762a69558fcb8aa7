package commands

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mkrylov/goalie/internal/apperrors"
	"github.com/mkrylov/goalie/internal/models"
	"github.com/mkrylov/goalie/internal/resolve"
	"github.com/mkrylov/goalie/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <goal>",
	Short: "Edit a goal's stored record in $EDITOR",
	Long: `Open the goal's stored record (description, thoughts, tags and estimate
components) as a yaml document in $EDITOR and save the edited result back.
The goal is matched by id or title substring like everywhere else.

The progress ledger is append-only and is not exposed for editing; use undo
to remove a mislogged session.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer app.st.Close()

		goals, err := app.st.LoadAll()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		goal, err := resolve.Goal(args[0], goals, tui.Prompt{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := editGoal(app, goal); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Updated goal #%d.\n", goal.ID)
	},
}

// goalDoc is the editable yaml shape of a goal. The progress ledger and the
// bookkeeping timestamps stay out of it.
type goalDoc struct {
	Description string                 `yaml:"description"`
	Thoughts    string                 `yaml:"thoughts"`
	Tags        []string               `yaml:"tags"`
	Values      map[string]estimateDoc `yaml:"values"`
	Costs       map[string]estimateDoc `yaml:"costs"`
	Times       map[string]estimateDoc `yaml:"times"`
}

type estimateDoc struct {
	Low  string `yaml:"low"`
	High string `yaml:"high"`
}

func editGoal(app *app, goal *models.Goal) error {
	data, err := encodeGoalDoc(goal)
	if err != nil {
		return err
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("goalie-edit-%d.yaml", goal.ID))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	defer os.Remove(path)

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", editor, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := applyGoalDoc(goal, edited); err != nil {
		return err
	}
	return app.st.Save(goal)
}

func encodeGoalDoc(goal *models.Goal) ([]byte, error) {
	doc := goalDoc{
		Description: goal.Description,
		Thoughts:    goal.Thoughts,
		Tags:        goal.Tags,
		Values:      encodeEstimates(goal.ValueComponents),
		Costs:       encodeEstimates(goal.CostComponents),
		Times:       encodeEstimates(goal.TimeComponents),
	}
	return yaml.Marshal(doc)
}

func encodeEstimates(components map[string]models.Range) map[string]estimateDoc {
	docs := make(map[string]estimateDoc, len(components))
	for reason, r := range components {
		docs[reason] = estimateDoc{Low: r.Low.String(), High: r.High.String()}
	}
	return docs
}

// applyGoalDoc strictly decodes an edited record and writes it back onto the
// goal. Unknown keys and malformed numbers are rejected before anything is
// touched.
func applyGoalDoc(goal *models.Goal, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc goalDoc
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedCommand, err)
	}
	if strings.TrimSpace(doc.Description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrMalformedCommand)
	}
	values, err := decodeEstimates(doc.Values, "values")
	if err != nil {
		return err
	}
	costs, err := decodeEstimates(doc.Costs, "costs")
	if err != nil {
		return err
	}
	times, err := decodeEstimates(doc.Times, "times")
	if err != nil {
		return err
	}
	goal.Description = strings.TrimSpace(doc.Description)
	goal.Thoughts = doc.Thoughts
	goal.Tags = doc.Tags
	goal.ValueComponents = values
	goal.CostComponents = costs
	goal.TimeComponents = times
	return nil
}

func decodeEstimates(docs map[string]estimateDoc, field string) (map[string]models.Range, error) {
	components := make(map[string]models.Range, len(docs))
	for reason, doc := range docs {
		low, err := decimal.NewFromString(doc.Low)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: bad lower bound %q", apperrors.ErrMalformedCommand, field, reason, doc.Low)
		}
		high, err := decimal.NewFromString(doc.High)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: bad upper bound %q", apperrors.ErrMalformedCommand, field, reason, doc.High)
		}
		components[reason] = models.Range{Low: low, High: high}
	}
	return components, nil
}
