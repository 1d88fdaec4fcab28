package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/aromabench/internal/store"
	"github.com/abhisek/aromabench/internal/workbench"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the document as JSON (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if len(args) == 0 {
			return store.Export(cmd.OutOrStdout(), s.ws.Document())
		}
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		if err := store.Export(f, s.ws.Document()); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the document with a JSON export",
	Long: `Replace the stored document with the contents of a JSON export.
The file is validated first; nothing is replaced when it is invalid.
Fragrances assigned to more than one choice of a question are reported
but kept as they are.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		doc, err := store.Import(f)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.ws.Replace(cmd.Context(), doc); err != nil {
			return err
		}
		reportImport(cmd.OutOrStdout(), doc)
		return nil
	},
}

func reportImport(w io.Writer, doc workbench.Document) {
	fmt.Fprintf(w, "Imported %d fragrances and %d patterns.\n", len(doc.Fragrances), len(doc.Patterns))
	for _, v := range workbench.CheckDocument(doc) {
		fmt.Fprintf(w, "warning: %s\n", v.Error())
	}
}
