package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/basekit/pkg/codec"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Encode bytes as hex, base32 or base64",
	Long: `Encode the given argument, or standard input when no argument is given.

Examples:
  basekit encode hello
  basekit encode --encoding base32 < payload.bin
  echo -n foobar | basekit encode -e base64url`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoding, _ := cmd.Flags().GetString("encoding")
		if encoding == "" {
			encoding = cfg.Codec.Encoding
		}

		input, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		text, err := encodeInput(encoding, input)
		if err != nil {
			return err
		}
		logger.Debug("encoded input", zap.String("encoding", encoding), zap.Int("bytes", len(input)))

		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [text]",
	Short: "Decode hex, base32 or base64 text back to bytes",
	Long: `Decode the given argument, or standard input when no argument is given.
Whitespace, including line breaks, is ignored. The raw bytes are written to
standard output.

Examples:
  basekit decode -e hex 68656c6c6f
  basekit decode -e base64 < payload.b64 > payload.bin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoding, _ := cmd.Flags().GetString("encoding")
		if encoding == "" {
			encoding = cfg.Codec.Encoding
		}

		input, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		data, err := decodeInput(encoding, string(input))
		if err != nil {
			return err
		}
		logger.Debug("decoded input", zap.String("encoding", encoding), zap.Int("bytes", len(data)))

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// encodingsCmd lists the supported encodings
var encodingsCmd = &cobra.Command{
	Use:   "encodings",
	Short: "List the supported encodings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range codec.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodingsCmd)

	encodeCmd.Flags().StringP("encoding", "e", "", "Encoding to use (defaults to codec.encoding from the config)")
	decodeCmd.Flags().StringP("encoding", "e", "", "Encoding to use (defaults to codec.encoding from the config)")
}

// readInput returns the single argument if present, otherwise all of r
func readInput(r io.Reader, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

func encodeInput(encoding string, data []byte) (string, error) {
	c, err := codec.Lookup(encoding)
	if err != nil {
		return "", err
	}
	return c.EncodeToString(data), nil
}

func decodeInput(encoding, text string) ([]byte, error) {
	c, err := codec.Lookup(encoding)
	if err != nil {
		return nil, err
	}
	data, err := c.DecodeString(strings.Join(strings.Fields(text), ""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s input: %w", c.Name(), err)
	}
	return data, nil
}
