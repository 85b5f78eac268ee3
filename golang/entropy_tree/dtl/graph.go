package dtl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pkg/errors"
)

//GraphFormats maps file extensions to graphviz output formats.
var GraphFormats = map[string]graphviz.Format{
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
	"dot": graphviz.XDOT,
}

func recurrentDraw(g *cgraph.Graph, node Node, nodeNumber *int, parentNode *cgraph.Node, edgeLabel string) error {
	currentNode, err := g.CreateNode(fmt.Sprint(*nodeNumber))
	if err != nil {
		return errors.Wrap(err, "create graph node")
	}
	*nodeNumber++

	if parentNode != nil {
		edge, err := g.CreateEdge("", parentNode, currentNode)
		if err != nil {
			return errors.Wrap(err, "create graph edge")
		}
		edge.Set("label", edgeLabel)
	}

	currentNode.Set("label", node.GraphDescription())
	switch n := node.(type) {
	case Leaf:
		currentNode.Set("shape", "box")
	case Internal:
		if err := recurrentDraw(g, n.Left, nodeNumber, currentNode, "<"); err != nil {
			return err
		}
		return recurrentDraw(g, n.Right, nodeNumber, currentNode, ">=")
	}
	return nil
}

//DrawGraph builds a graphviz graph of the tree. The caller closes both returned values.
func (tree *Tree) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph, error) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		graphViz.Close()
		return nil, nil, errors.Wrap(err, "create graph")
	}

	nodeNumber := 0
	if err := recurrentDraw(graph, tree.root, &nodeNumber, nil, ""); err != nil {
		graph.Close()
		graphViz.Close()
		return nil, nil, err
	}
	return graphViz, graph, nil
}

//RenderGraph renders the tree into filename. figureType is a key of GraphFormats.
func (tree *Tree) RenderGraph(filename, figureType string) error {
	format, ok := GraphFormats[figureType]
	if !ok {
		return invalidConfig("unknown figure type %q", figureType)
	}

	graphViz, graph, err := tree.DrawGraph()
	if err != nil {
		return err
	}
	defer graphViz.Close()
	defer graph.Close()

	return errors.Wrapf(graphViz.RenderFilename(graph, format, filename), "render %s", filename)
}

//WriteDot writes the tree as a DOT digraph without going through the graphviz C library.
func (tree *Tree) WriteDot(w io.Writer) error {
	graph := gographviz.NewGraph()
	if err := graph.SetName("G"); err != nil {
		return errors.Wrap(err, "name graph")
	}
	if err := graph.SetDir(true); err != nil {
		return errors.Wrap(err, "direct graph")
	}

	nodeNumber := 0
	if err := addDotNode(graph, tree.root, &nodeNumber, "", ""); err != nil {
		return err
	}

	_, err := io.WriteString(w, graph.String())
	return errors.Wrap(err, "write dot")
}

func addDotNode(graph *gographviz.Graph, node Node, nodeNumber *int, parent, edgeLabel string) error {
	name := strconv.Itoa(*nodeNumber)
	*nodeNumber++

	attrs := map[string]string{"label": strconv.Quote(node.GraphDescription())}
	if node.IsLeaf() {
		attrs["shape"] = "box"
	}
	if err := graph.AddNode("G", name, attrs); err != nil {
		return errors.Wrapf(err, "add dot node %s", name)
	}
	if parent != "" {
		if err := graph.AddEdge(parent, name, true, map[string]string{"label": strconv.Quote(edgeLabel)}); err != nil {
			return errors.Wrapf(err, "add dot edge %s -> %s", parent, name)
		}
	}

	if n, ok := node.(Internal); ok {
		if err := addDotNode(graph, n.Left, nodeNumber, name, "<"); err != nil {
			return err
		}
		return addDotNode(graph, n.Right, nodeNumber, name, ">=")
	}
	return nil
}
