package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/flaneur2020/pngstash/pngstash"
	"github.com/flaneur2020/pngstash/pngstash/logger"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	outputPath string
	noProgress bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pngstash",
		Short: "A CLI tool for stashing and inspecting PNG chunks",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLogLevel(logger.LogLevelInfo)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	// encode command
	encodeCmd := &cobra.Command{
		Use:   "encode <FILE> <CHUNK_TYPE> <MESSAGE>",
		Short: "Append a chunk carrying MESSAGE to a PNG file",
		Args:  cobra.ExactArgs(3),
		Run:   runEncode,
	}
	encodeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write result to this path instead of rewriting FILE")

	// decode command
	decodeCmd := &cobra.Command{
		Use:   "decode <FILE> <CHUNK_TYPE>",
		Short: "Print the data of the first chunk of the given type",
		Args:  cobra.ExactArgs(2),
		Run:   runDecode,
	}

	// remove command
	removeCmd := &cobra.Command{
		Use:   "remove <FILE> <CHUNK_TYPE>",
		Short: "Remove the first chunk of the given type",
		Args:  cobra.ExactArgs(2),
		Run:   runRemove,
	}
	removeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write result to this path instead of rewriting FILE")

	// print command
	printCmd := &cobra.Command{
		Use:   "print <FILE>",
		Short: "List all chunks in a PNG file",
		Args:  cobra.ExactArgs(1),
		Run:   runPrint,
	}

	// verify command
	verifyCmd := &cobra.Command{
		Use:   "verify <FILE>",
		Short: "Check chunk framing and checksums, printing a data digest per chunk",
		Args:  cobra.ExactArgs(1),
		Run:   runVerify,
	}

	// strip command
	stripCmd := &cobra.Command{
		Use:   "strip <FILE>",
		Short: "Remove all ancillary chunks and rewrite the file",
		Args:  cobra.ExactArgs(1),
		Run:   runStrip,
	}
	stripCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write result to this path instead of rewriting FILE")
	stripCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bar (progress is enabled by default)")

	rootCmd.AddCommand(encodeCmd, decodeCmd, removeCmd, printCmd, verifyCmd, stripCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadPNG(path string) *pngstash.PNG {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	png, err := pngstash.ParsePNG(raw)
	if err != nil {
		if pngstash.IsPngError(err) {
			fmt.Fprintf(os.Stderr, "%s is not a valid PNG: %v\n", path, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
		}
		os.Exit(1)
	}

	logger.Info("parsed %s: %d chunks", path, len(png.Chunks()))
	return png
}

func writePNG(path string, png *pngstash.PNG) {
	if err := os.WriteFile(path, png.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}
	logger.Info("wrote %s: %d chunks", path, len(png.Chunks()))
}

// outputFor picks the rewrite target: --output when given, FILE otherwise.
func outputFor(inputPath string) string {
	if outputPath != "" {
		return outputPath
	}
	return inputPath
}

func parseChunkTypeArg(arg string) pngstash.ChunkType {
	chunkType, err := pngstash.ParseChunkType(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return chunkType
}

func runEncode(cmd *cobra.Command, args []string) {
	png := loadPNG(args[0])
	chunkType := parseChunkTypeArg(args[1])
	message := args[2]

	if !chunkType.IsValid() {
		fmt.Fprintf(os.Stderr, "Warning: chunk type %s has the reserved bit set\n", chunkType)
	}

	png.AppendChunk(pngstash.NewChunk(chunkType, []byte(message)))
	writePNG(outputFor(args[0]), png)

	fmt.Printf("Encoded %d bytes into chunk %s\n", len(message), chunkType)
}

func runDecode(cmd *cobra.Command, args []string) {
	png := loadPNG(args[0])
	chunkType := parseChunkTypeArg(args[1])

	chunk := png.ChunkByType(chunkType)
	if chunk == nil {
		fmt.Fprintf(os.Stderr, "No chunk of type %s in %s\n", chunkType, args[0])
		os.Exit(1)
	}

	message, err := chunk.DataString()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(message)
}

func runRemove(cmd *cobra.Command, args []string) {
	png := loadPNG(args[0])
	chunkType := parseChunkTypeArg(args[1])

	chunk, err := png.RemoveFirstChunk(chunkType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	writePNG(outputFor(args[0]), png)
	fmt.Printf("Removed chunk %s (%d bytes)\n", chunk.Type, chunk.Length())
}

func runPrint(cmd *cobra.Command, args []string) {
	png := loadPNG(args[0])

	for i, chunk := range png.Chunks() {
		class := "critical"
		if chunk.Type.IsAncillary() {
			class = "ancillary"
		}
		fmt.Printf("%d: %s (%s)\n", i, chunk, class)

		if chunk.Type == pngstash.IHDRType {
			header, err := pngstash.ParseIHDR(chunk)
			if err != nil {
				fmt.Printf("   %v\n", err)
				continue
			}
			fmt.Printf("   %s\n", header)
		}
	}
}

func runVerify(cmd *cobra.Command, args []string) {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	png, err := pngstash.ParsePNG(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s is not a valid PNG: %v\n", args[0], err)
		os.Exit(1)
	}

	for _, chunk := range png.Chunks() {
		fmt.Printf("%s  %s\n", chunk.DataDigest(), chunk)
	}
	fmt.Printf("OK: %d chunks, %d bytes\n", len(png.Chunks()), len(raw))
}

func runStrip(cmd *cobra.Command, args []string) {
	png := loadPNG(args[0])

	removed := png.StripAncillary()
	for _, chunk := range removed {
		logger.Info("stripping %s", chunk)
	}

	out := png.Bytes()
	target := outputFor(args[0])

	file, err := os.Create(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", target, err)
		os.Exit(1)
	}
	defer file.Close()

	var dst io.Writer = file
	if !noProgress {
		bar := progressbar.DefaultBytes(int64(len(out)), fmt.Sprintf("Rewriting %s", target))
		dst = io.MultiWriter(file, bar)
	}

	if _, err := io.Copy(dst, bytes.NewReader(out)); err != nil {
		fmt.Fprintf(os.Stderr, "\nError writing %s: %v\n", target, err)
		os.Exit(1)
	}

	if !noProgress {
		fmt.Println()
	}
	fmt.Printf("Stripped %d ancillary chunks, kept %d\n", len(removed), len(png.Chunks()))
}
