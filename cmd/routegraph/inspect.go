package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-route/dsp/graph"
	"github.com/cwbudde/algo-route/dsp/snapshot"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newInspectCmd(log logrus.FieldLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <config.json>",
		Short: "Print the execution order of every graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.LoadFile(args[0])
			if snap == nil {
				return err
			}

			if err != nil {
				log.WithFields(logrus.Fields{
					"function": "inspect",
					"error":    err,
				}).Warn("Configuration has unscheduled nodes")
			}

			return printSnapshot(cmd.OutOrStdout(), snap)
		},
	}
}

func printSnapshot(w io.Writer, snap *snapshot.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "mode:\t%s\n", snap.Mode)
	fmt.Fprintf(tw, "enabled:\t%t\n", snap.Enabled)
	fmt.Fprintf(tw, "limiter:\t%t\n", snap.Limiter)

	plans := snap.Plans()

	for _, section := range []struct {
		name string
		plan *graph.Plan
	}{
		{"automatic", plans.Automatic},
		{"manual", plans.Manual},
		{"split-left", plans.SplitLeft},
		{"split-right", plans.SplitRight},
	} {
		fmt.Fprintf(tw, "\n[%s]\n", section.name)

		if section.plan.Inert() {
			fmt.Fprintln(tw, "  passthrough")
			continue
		}

		for i, step := range section.plan.Steps {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", i+1, step.Key, step.Kind, describeInputs(step.Inputs))
		}

		fmt.Fprintf(tw, "  out\t%s\t\t%s\n", section.plan.End, describeInputs(section.plan.Output))
		fmt.Fprintf(tw, "  order\t%s\n", strings.Join(section.plan.Order(), " -> "))

		for _, c := range section.plan.AutoWired {
			fmt.Fprintf(tw, "  auto\t%s -> %s\n", c.From, c.To)
		}

		if len(section.plan.Unscheduled) > 0 {
			fmt.Fprintf(tw, "  cycle\t%s\n", strings.Join(section.plan.Unscheduled, ", "))
		}

		if len(section.plan.Unreachable) > 0 {
			fmt.Fprintf(tw, "  unreachable\t%s\n", strings.Join(section.plan.Unreachable, ", "))
		}
	}

	return tw.Flush()
}

func describeInputs(inputs []graph.Input) string {
	if len(inputs) == 0 {
		return "(silent)"
	}

	parts := make([]string, len(inputs))
	for i, in := range inputs {
		parts[i] = fmt.Sprintf("%s*%.2f", in.From, in.Gain)
	}

	return strings.Join(parts, " + ")
}
