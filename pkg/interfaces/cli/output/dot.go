package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/prodflow/prodflow/pkg/domain/entities"
)

// WriteDOT renders the graph as a Graphviz DOT document. Vertices are
// emitted in insertion order and edges in creation order, so the same
// graph always renders the same document.
func WriteDOT(w io.Writer, graph *entities.ProductionGraph, title string) error {
	if graph == nil {
		return fmt.Errorf("cannot render nil graph")
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "digraph \"%s\" {\n", title)
	b.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&b, "  label=\"%s\";\n", title)

	for _, vertex := range graph.Vertices() {
		fmt.Fprintf(&b, "  v%d [shape=%s, label=\"%s\"];\n",
			vertex.ID(), vertexShape(vertex.Kind()), vertexLabel(vertex))
	}

	for _, edge := range graph.Edges() {
		fmt.Fprintf(&b, "  v%d -> v%d [label=\"%s (%s)\"];\n",
			edge.Src.ID(), edge.Dst.ID(), edge.Product, edge.Rate)
	}

	b.WriteString("}\n")

	_, err := w.Write(b.Bytes())
	return err
}

func vertexShape(kind entities.VertexKind) string {
	switch kind {
	case entities.SourceVertex:
		return "invhouse"
	case entities.MachineVertex:
		return "box"
	case entities.SinkVertex:
		return "house"
	case entities.WasteVertex:
		return "octagon"
	default:
		return "ellipse"
	}
}

func vertexLabel(vertex *entities.Vertex) string {
	switch vertex.Kind() {
	case entities.SourceVertex:
		return fmt.Sprintf("%s\\nsupply %s", vertex.Product(), vertex.Supply())
	case entities.MachineVertex:
		return fmt.Sprintf("%s x%d\\n%s", vertex.Recipe().Name, vertex.Scale(), vertex.Recipe().Building)
	case entities.SinkVertex:
		return fmt.Sprintf("%s\\n%s", vertex.Product(), vertex.Accumulated())
	case entities.WasteVertex:
		return fmt.Sprintf("waste %s\\n%s", vertex.Product(), vertex.Discarded())
	default:
		return vertex.String()
	}
}
