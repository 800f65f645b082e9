package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leo-du/bytebpe/internal/tokenizer"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode text into symbol ids",
	Long: `Encode reads lines from a file (or stdin) and writes one line of
space-separated symbol ids per input line, applying the merges of a trained
model in the order they were learned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode symbol ids back into text",
	Long: `Decode reads lines of space-separated symbol ids from a file (or
stdin) and writes the decoded bytes of each line. Decoded tokens keep the
trailing space their final symbol renders with.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

var codecModel string

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)

	for _, cmd := range []*cobra.Command{encodeCmd, decodeCmd} {
		cmd.Flags().StringVarP(&codecModel, "model", "m", "", "trained model file")
		cmd.MarkFlagRequired("model")
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	if _, err := setup(); err != nil {
		return err
	}
	model, err := loadCodecModel()
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()

	out := bufio.NewWriter(os.Stdout)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		ids, err := model.EncodeLine(sc.Bytes())
		if err != nil {
			return fmt.Errorf("encoding: %w", err)
		}
		for i, id := range ids {
			if i > 0 {
				out.WriteByte(' ')
			}
			out.WriteString(strconv.Itoa(id))
		}
		out.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return out.Flush()
}

func runDecode(cmd *cobra.Command, args []string) error {
	if _, err := setup(); err != nil {
		return err
	}
	model, err := loadCodecModel()
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()

	out := bufio.NewWriter(os.Stdout)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		ids := make([]int, 0, len(fields))
		for _, field := range fields {
			id, err := strconv.Atoi(field)
			if err != nil {
				return fmt.Errorf("bad symbol id %q: %w", field, err)
			}
			ids = append(ids, id)
		}
		decoded, err := model.Decode(ids)
		if err != nil {
			return fmt.Errorf("decoding: %w", err)
		}
		out.Write(decoded)
		out.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return out.Flush()
}

func loadCodecModel() (*tokenizer.Model, error) {
	model := tokenizer.NewModel()
	if err := model.Load(codecModel, false); err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	return model, nil
}

func openInput(args []string) (*os.File, func(), error) {
	if len(args) == 0 {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { f.Close() }, nil
}
