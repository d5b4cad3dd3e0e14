// Command swayabi encodes and decodes Sway ABI call data from the command
// line. It is a thin consumer of the swayabi library: all layout, selector,
// and codec rules live there.
//
// Usage:
//
//	swayabi encode params -v bool:true -v u32:42
//	swayabi encode function abi.json transfer -p 100 -p 0x...
//	swayabi decode params -t bool -t u32 0x0000000000000001000000000000002a
//	swayabi decode function abi.json transfer 0x...
//	swayabi selector abi.json transfer
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli"

	swayabi "github.com/branched-services/go-swayabi"
)

var (
	typedValueFlag = cli.StringSliceFlag{
		Name:  "value, v",
		Usage: "typed value literal in <type>:<value> form, repeatable",
	}
	typeFlag = cli.StringSliceFlag{
		Name:  "type, t",
		Usage: "parameter type string, repeatable",
	}
	paramFlag = cli.StringSliceFlag{
		Name:  "param, p",
		Usage: "argument value literal, repeatable, matched against the function inputs",
	}
	outputsFlag = cli.BoolFlag{
		Name:  "outputs",
		Usage: "decode against the function outputs instead of its inputs",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "sway abi call data encoder/decoder"
	app.Commands = []cli.Command{
		{
			Name:  "encode",
			Usage: "encode values into abi call data",
			Subcommands: []cli.Command{
				{
					Name:   "params",
					Usage:  "encode bare typed values, no selector word",
					Action: encodeParams,
					Flags:  []cli.Flag{typedValueFlag},
				},
				{
					Name:      "function",
					Usage:     "encode a selector-prefixed function call",
					ArgsUsage: "<abi.json> <function>",
					Action:    encodeFunction,
					Flags:     []cli.Flag{paramFlag},
				},
			},
		},
		{
			Name:  "decode",
			Usage: "decode abi call data into values",
			Subcommands: []cli.Command{
				{
					Name:      "params",
					Usage:     "decode bare values against type strings",
					ArgsUsage: "<hex>",
					Action:    decodeParams,
					Flags:     []cli.Flag{typeFlag},
				},
				{
					Name:      "function",
					Usage:     "decode a selector-prefixed function call",
					ArgsUsage: "<abi.json> <function> <hex>",
					Action:    decodeFunction,
					Flags:     []cli.Flag{outputsFlag},
				},
			},
		},
		{
			Name:      "selector",
			Usage:     "print a function's signature and selector",
			ArgsUsage: "<abi.json> <function>",
			Action:    printSelector,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func encodeParams(ctx *cli.Context) error {
	pairs := ctx.StringSlice("value")
	if len(pairs) == 0 {
		return cli.NewExitError("at least one --value <type>:<value> is required", 1)
	}
	values := make([]swayabi.Value, len(pairs))
	for i, pair := range pairs {
		typeStr, literal, ok := strings.Cut(pair, ":")
		if !ok {
			return cli.NewExitError(fmt.Sprintf("--value %q: expected <type>:<value>", pair), 1)
		}
		t, err := swayabi.ParseType(typeStr)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		values[i], err = swayabi.ParseValue(t, literal)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	}
	encoded, err := swayabi.EncodeParams(values...)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Println(hexutil.Encode(encoded))
	return nil
}

func encodeFunction(ctx *cli.Context) error {
	fn, err := loadFunction(ctx)
	if err != nil {
		return err
	}
	literals := ctx.StringSlice("param")
	if len(literals) != len(fn.Inputs) {
		return cli.NewExitError(fmt.Sprintf("function %s takes %d arguments, got %d",
			fn.Name, len(fn.Inputs), len(literals)), 1)
	}
	args := make([]swayabi.Value, len(literals))
	for i, lit := range literals {
		args[i], err = swayabi.ParseValue(fn.Inputs[i].Type, lit)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	}
	encoded, err := swayabi.EncodeFunctionCall(fn, args...)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Println(hexutil.Encode(encoded))
	return nil
}

func decodeParams(ctx *cli.Context) error {
	typeStrs := ctx.StringSlice("type")
	if len(typeStrs) == 0 {
		return cli.NewExitError("at least one --type is required", 1)
	}
	if ctx.NArg() != 1 {
		return cli.NewExitError("expected one hex argument", 1)
	}
	data, err := parseHex(ctx.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	types := make([]*swayabi.Type, len(typeStrs))
	for i, s := range typeStrs {
		types[i], err = swayabi.ParseType(s)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	}
	values, err := swayabi.DecodeParams(types, data)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	for i, v := range values {
		fmt.Printf("%s: %s\n", types[i], v)
	}
	return nil
}

func decodeFunction(ctx *cli.Context) error {
	fn, err := loadFunction(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 3 {
		return cli.NewExitError("expected <abi.json> <function> <hex>", 1)
	}
	data, err := parseHex(ctx.Args().Get(2))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	var params []swayabi.Parameter
	var values []swayabi.Value
	if ctx.Bool("outputs") {
		params = fn.Outputs
		values, err = swayabi.DecodeFunctionResult(fn, data)
	} else {
		params = fn.Inputs
		values, err = swayabi.DecodeFunctionCall(fn, data)
	}
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	for i, v := range values {
		name := params[i].Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		fmt.Printf("%s: %s\n", name, v)
	}
	return nil
}

func printSelector(ctx *cli.Context) error {
	fn, err := loadFunction(ctx)
	if err != nil {
		return err
	}
	sel := swayabi.Selector(fn)
	word := swayabi.SelectorWord(sel)
	fmt.Printf("signature: %s\n", fn.Signature())
	fmt.Printf("selector:  0x%s\n", hex.EncodeToString(sel[:]))
	fmt.Printf("word:      0x%s\n", hex.EncodeToString(word[:]))
	return nil
}

// loadFunction resolves the <abi.json> <function> leading arguments shared
// by the function-oriented commands.
func loadFunction(ctx *cli.Context) (*swayabi.Function, error) {
	if ctx.NArg() < 2 {
		return nil, cli.NewExitError("expected <abi.json> <function> arguments", 1)
	}
	f, err := os.Open(ctx.Args().Get(0))
	if err != nil {
		return nil, cli.NewExitError(err.Error(), 1)
	}
	defer f.Close()
	contractABI, err := swayabi.ReadABI(f)
	if err != nil {
		return nil, cli.NewExitError(err.Error(), 1)
	}
	fn, err := contractABI.Function(ctx.Args().Get(1))
	if err != nil {
		return nil, cli.NewExitError(err.Error(), 1)
	}
	return fn, nil
}

// parseHex accepts hex with or without the 0x prefix.
func parseHex(s string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	data, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}
