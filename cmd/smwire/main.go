// smwire builds and decodes leaf/main wire messages from the command
// line, for poking at captures and feeding bench radios.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/jgallagher59701/soil-moisture-common/internal/message"
)

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "smwire: %v\n", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:  "smwire",
		Usage: "build and decode soil-moisture wire messages",
		Commands: []*cli.Command{
			decodeCmd(),
			buildCmd(),
		},
	}
}

func decodeCmd() *cli.Command {
	compact := false
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode a hex-encoded frame and print it",
		ArgsUsage: "<hex>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "compact",
				Usage:       "print comma-separated values instead of labeled fields",
				Destination: &compact,
			},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return fmt.Errorf("expected one hex frame argument")
			}
			buf, err := parseHexFrame(ctx.Args().First())
			if err != nil {
				return err
			}
			out, err := message.Format(buf, !compact)
			if err != nil {
				return err
			}
			fmt.Fprintln(ctx.App.Writer, out)
			return nil
		},
	}
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "build a frame and print its hex encoding",
		Subcommands: []*cli.Command{
			buildJoinRequestCmd(),
			buildJoinResponseCmd(),
			buildTimeRequestCmd(),
			buildTimeResponseCmd(),
			buildTextCmd(),
			buildDataCmd(),
		},
	}
}

func buildJoinRequestCmd() *cli.Command {
	eui := ""
	return &cli.Command{
		Name:  "join-request",
		Flags: []cli.Flag{euiFlag(&eui)},
		Action: func(ctx *cli.Context) error {
			devEUI, err := parseEUI(eui)
			if err != nil {
				return err
			}
			return emit(ctx, message.JoinRequest{DevEUI: devEUI}.Encode())
		},
	}
}

func buildJoinResponseCmd() *cli.Command {
	var node, leaf uint
	var when uint
	return &cli.Command{
		Name: "join-response",
		Flags: []cli.Flag{
			nodeFlag(&node),
			&cli.UintFlag{Name: "leaf", Usage: "assigned leaf node number", Required: true, Destination: &leaf},
			timeFlag(&when),
		},
		Action: func(ctx *cli.Context) error {
			m := message.JoinResponse{Node: uint8(node), LeafNode: uint8(leaf), Time: uint32(when)}
			return emit(ctx, m.Encode())
		},
	}
}

func buildTimeRequestCmd() *cli.Command {
	var node uint
	return &cli.Command{
		Name:  "time-request",
		Flags: []cli.Flag{nodeFlag(&node)},
		Action: func(ctx *cli.Context) error {
			return emit(ctx, message.TimeRequest{Node: uint8(node)}.Encode())
		},
	}
}

func buildTimeResponseCmd() *cli.Command {
	var node, when uint
	return &cli.Command{
		Name:  "time-response",
		Flags: []cli.Flag{nodeFlag(&node), timeFlag(&when)},
		Action: func(ctx *cli.Context) error {
			return emit(ctx, message.TimeResponse{Node: uint8(node), Time: uint32(when)}.Encode())
		},
	}
}

func buildTextCmd() *cli.Command {
	var node uint
	body := ""
	return &cli.Command{
		Name: "text",
		Flags: []cli.Flag{
			nodeFlag(&node),
			&cli.StringFlag{Name: "body", Usage: "message body, clipped to the frame bound", Destination: &body},
		},
		Action: func(ctx *cli.Context) error {
			buf, n := message.Text{Node: uint8(node), Body: []byte(body)}.Encode()
			if n < len(body) {
				fmt.Fprintf(ctx.App.ErrWriter, "body clipped to %d bytes\n", n)
			}
			return emit(ctx, buf)
		},
	}
}

func buildDataCmd() *cli.Command {
	var node, seq, when, battery, txMS, humidity, status uint
	var temp int
	return &cli.Command{
		Name: "data",
		Flags: []cli.Flag{
			nodeFlag(&node),
			&cli.UintFlag{Name: "seq", Usage: "message sequence number", Destination: &seq},
			timeFlag(&when),
			&cli.UintFlag{Name: "battery", Usage: "battery voltage x100", Destination: &battery},
			&cli.UintFlag{Name: "tx-ms", Usage: "last transmit duration in ms", Destination: &txMS},
			&cli.IntFlag{Name: "temp", Usage: "temperature C x100", Destination: &temp},
			&cli.UintFlag{Name: "humidity", Usage: "relative humidity x100", Destination: &humidity},
			&cli.UintFlag{Name: "status", Usage: "sensor status code", Destination: &status},
		},
		Action: func(ctx *cli.Context) error {
			m := message.DataMessage{
				Node:           uint8(node),
				Message:        uint32(seq),
				Time:           uint32(when),
				Battery:        uint16(battery),
				LastTxDuration: uint16(txMS),
				Temp:           int16(temp),
				Humidity:       uint16(humidity),
				Status:         uint8(status),
			}
			return emit(ctx, m.Encode())
		},
	}
}

func nodeFlag(dst *uint) cli.Flag {
	return &cli.UintFlag{Name: "node", Usage: "sender node number", Destination: dst}
}

func timeFlag(dst *uint) cli.Flag {
	return &cli.UintFlag{Name: "time", Usage: "unix time", Destination: dst}
}

func euiFlag(dst *string) cli.Flag {
	return &cli.StringFlag{Name: "eui", Usage: "device EUI in hex", Required: true, Destination: dst}
}

func emit(ctx *cli.Context, buf []byte) error {
	fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(buf))
	return nil
}

func parseHexFrame(raw string) ([]byte, error) {
	s := strings.NewReplacer(" ", "", ":", "").Replace(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "0x")
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse hex frame: %w", err)
	}
	return buf, nil
}

func parseEUI(raw string) (uint64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(strings.ToLower(raw)), "0x")
	eui, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse eui %q: %w", raw, err)
	}
	return eui, nil
}
