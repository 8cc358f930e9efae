package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/MrJohz/figtree"
	"github.com/MrJohz/figtree/figparser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// identTag marks !identifier values in YAML output.
const identTag = "!ident"

var dumpCmd = &cobra.Command{
	Use:   "dump <file.ft>",
	Short: "Print a parsed figtree document as YAML or JSON",
	Long: "Parse a file and print the resulting document. Every node becomes a mapping with " +
		"optional 'attributes' and 'nodes' keys; identifiers are tagged " + identTag + " in YAML.",
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
	_ = viper.BindPFlag("format", dumpCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	doc, err := figtree.ParseFile(args[0], figparser.WithLogger(debugLogger(cmd)))
	if err != nil {
		return err
	}

	switch format := viper.GetString("format"); format {
	case "yaml", "yml":
		return writeYAML(cmd.OutOrStdout(), doc)
	case "json":
		return writeJSON(cmd.OutOrStdout(), doc)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func writeYAML(w io.Writer, doc *figtree.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(documentYAML(doc)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, doc *figtree.Document) error {
	out := make(map[string]any, doc.NodeCount())
	for _, name := range doc.Names() {
		out[name] = nodeJSON(doc.Node(name))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func nodeJSON(n *figtree.Node) map[string]any {
	out := make(map[string]any, 2)
	if n.AttrCount() > 0 {
		attrs := make(map[string]any, n.AttrCount())
		for key, v := range n.Attributes {
			attrs[key] = v.Interface()
		}
		out["attributes"] = attrs
	}
	if n.NodeCount() > 0 {
		nodes := make(map[string]any, n.NodeCount())
		for name, sub := range n.Subnodes {
			nodes[name] = nodeJSON(sub)
		}
		out["nodes"] = nodes
	}
	return out
}

func documentYAML(doc *figtree.Document) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range doc.Names() {
		root.Content = append(root.Content, keyYAML(name), nodeYAML(doc.Node(name)))
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
}

func nodeYAML(n *figtree.Node) *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode}
	if n.AttrCount() > 0 {
		attrs := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range n.AttrNames() {
			v, _ := n.Attr(key)
			attrs.Content = append(attrs.Content, keyYAML(key), valueYAML(v))
		}
		out.Content = append(out.Content, keyYAML("attributes"), attrs)
	}
	if n.NodeCount() > 0 {
		nodes := &yaml.Node{Kind: yaml.MappingNode}
		for _, name := range n.SubnodeNames() {
			nodes.Content = append(nodes.Content, keyYAML(name), nodeYAML(n.Node(name)))
		}
		out.Content = append(out.Content, keyYAML("nodes"), nodes)
	}
	return out
}

func keyYAML(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func valueYAML(v figtree.Value) *yaml.Node {
	switch v.Kind {
	case figtree.ValueString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str}
	case figtree.ValueIdent:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: identTag, Value: v.Str}
	case figtree.ValueInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int, 10)}
	case figtree.ValueFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.Float, 'g', -1, 64)}
	case figtree.ValueBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool)}
	case figtree.ValueList:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v.List {
			seq.Content = append(seq.Content, valueYAML(item))
		}
		return seq
	case figtree.ValueDict:
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range v.DictKeys() {
			m.Content = append(m.Content, keyYAML(key), valueYAML(v.Dict[key]))
		}
		return m
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
