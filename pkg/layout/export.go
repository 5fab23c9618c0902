package layout

import (
	"encoding/json"

	"github.com/telintel/cdrlink/pkg/cdr"
	"github.com/telintel/cdrlink/pkg/graph"
)

// PositionedGraph pairs a classified graph with computed positions for
// export or rendering.
type PositionedGraph struct {
	Graph     *graph.Graph
	Positions map[cdr.Identifier]Position
}

// ExportJSON exports the positioned graph to JSON.
func (pg *PositionedGraph) ExportJSON() ([]byte, error) {
	type nodeViz struct {
		ID       cdr.Identifier `json:"id"`
		Role     string         `json:"role"`
		Calls    int            `json:"calls"`
		SMS      int            `json:"sms"`
		Duration int            `json:"durationSeconds"`
		Contacts int            `json:"contacts"`
		DeviceID string         `json:"deviceId,omitempty"`
		Location string         `json:"location,omitempty"`
		Size     float64        `json:"size"`
		X        float64        `json:"x"`
		Y        float64        `json:"y"`
	}

	type edgeViz struct {
		From           cdr.Identifier `json:"from"`
		To             cdr.Identifier `json:"to"`
		Calls          int            `json:"calls"`
		SMS            int            `json:"sms"`
		Duration       int            `json:"durationSeconds"`
		StrengthScore  int            `json:"strengthScore"`
		Classification string         `json:"classification"`
		Width          float64        `json:"width"`
	}

	type vizData struct {
		Nodes []nodeViz `json:"nodes"`
		Edges []edgeViz `json:"edges"`
	}

	data := vizData{
		Nodes: make([]nodeViz, 0, len(pg.Graph.Nodes)),
		Edges: make([]edgeViz, 0, len(pg.Graph.Edges)),
	}

	for _, node := range pg.Graph.Nodes {
		pos := pg.Positions[node.ID]
		data.Nodes = append(data.Nodes, nodeViz{
			ID:       node.ID,
			Role:     string(node.Role),
			Calls:    node.TotalCalls,
			SMS:      node.TotalSMS,
			Duration: node.TotalDurationSeconds,
			Contacts: node.DistinctContacts(),
			DeviceID: node.DeviceID,
			Location: node.Location,
			Size:     NodeSize(node.TotalInteractions()),
			X:        pos.X,
			Y:        pos.Y,
		})
	}

	for _, edge := range pg.Graph.Edges {
		data.Edges = append(data.Edges, edgeViz{
			From:           edge.A,
			To:             edge.B,
			Calls:          edge.CallCount,
			SMS:            edge.SMSCount,
			Duration:       edge.TotalDurationSeconds,
			StrengthScore:  edge.Strength.StrengthScore,
			Classification: string(edge.Strength.Classification),
			Width:          EdgeWidth(edge.Interactions()),
		})
	}

	return json.Marshal(data)
}
