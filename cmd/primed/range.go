package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/primelabs/primed"
	"github.com/primelabs/primed/domain/sieve"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// segmentOutput is the shape printed by the range and upto commands.
type segmentOutput struct {
	MinPrime int   `json:"min_prime" yaml:"min_prime"`
	MaxPrime int   `json:"max_prime" yaml:"max_prime"`
	Count    int   `json:"count" yaml:"count"`
	Sum      int64 `json:"sum" yaml:"sum"`
	Primes   []int `json:"primes" yaml:"primes"`
}

func rangeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "range MIN MAX",
		Short: "Enumerate primes in a closed range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minPrime, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("MIN must be an integer: %w", err)
			}
			maxPrime, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("MAX must be an integer: %w", err)
			}

			return runSieve(cmd.OutOrStdout(), format, func(ctx context.Context, client *primed.Client) (sieve.Segment, error) {
				return client.Sieve.Range(ctx, minPrime, maxPrime)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, yaml")

	return cmd
}

func uptoCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "upto MAX",
		Short: "Enumerate primes up to a bound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxPrime, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("MAX must be an integer: %w", err)
			}

			return runSieve(cmd.OutOrStdout(), format, func(ctx context.Context, client *primed.Client) (sieve.Segment, error) {
				return client.Sieve.Upto(ctx, maxPrime)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, yaml")

	return cmd
}

func runSieve(out io.Writer, format string, compute func(context.Context, *primed.Client) (sieve.Segment, error)) error {
	client, err := primed.New(primed.WithoutPersistence())
	if err != nil {
		return fmt.Errorf("create primed client: %w", err)
	}
	defer func() { _ = client.Close() }()

	segment, err := compute(context.Background(), client)
	if err != nil {
		return err
	}

	return writeSegment(out, format, segment)
}

func writeSegment(out io.Writer, format string, segment sieve.Segment) error {
	output := segmentOutput{
		MinPrime: segment.MinPrime(),
		MaxPrime: segment.MaxPrime(),
		Count:    segment.Count(),
		Sum:      segment.Sum(),
		Primes:   segment.Primes(),
	}

	switch format {
	case "text":
		for _, p := range output.Primes {
			fmt.Fprintln(out, p)
		}
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(output)
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}
