package services

import (
	"context"
	"testing"

	"github.com/andrewpaige1/thoughtcatcher-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodes_CreateAcceptsNumericStrings(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	m := createMindMap(t, db, user.ID, "Trip Plan")
	svc := NewNodes(db, NewGuard(db))

	node, err := svc.Create(context.Background(), user.ID, NodeInput{
		MindMapID: m.ID,
		Text:      "Root",
		Position:  &PositionInput{X: num(`"120.5"`), Y: num("-4")},
		Styling:   &NodeStylingInput{Shape: models.ShapeCircle},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Position{X: 120.5, Y: -4}, node.Position)
	assert.Equal(t, models.ShapeCircle, node.Styling.Shape)
	assert.Nil(t, node.ParentID)
	assert.Zero(t, node.Level)
}

func TestNodes_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	m := createMindMap(t, db, user.ID, "Trip Plan")
	svc := NewNodes(db, NewGuard(db))
	origin := &PositionInput{X: num("0"), Y: num("0")}

	tests := []struct {
		name  string
		in    NodeInput
		param string
	}{
		{name: "non-numeric x", in: NodeInput{MindMapID: m.ID, Text: "t", Position: &PositionInput{X: num(`"abc"`), Y: num("1")}}, param: "position.x"},
		{name: "NaN x", in: NodeInput{MindMapID: m.ID, Text: "t", Position: &PositionInput{X: num(`"NaN"`), Y: num("0")}}, param: "position.x"},
		{name: "infinite y", in: NodeInput{MindMapID: m.ID, Text: "t", Position: &PositionInput{X: num("0"), Y: num(`"Infinity"`)}}, param: "position.y"},
		{name: "hex x", in: NodeInput{MindMapID: m.ID, Text: "t", Position: &PositionInput{X: num(`"0x10"`), Y: num("0")}}, param: "position.x"},
		{name: "missing y", in: NodeInput{MindMapID: m.ID, Text: "t", Position: &PositionInput{X: num("1")}}, param: "position.y"},
		{name: "missing position", in: NodeInput{MindMapID: m.ID, Text: "t"}, param: "position"},
		{name: "missing text", in: NodeInput{MindMapID: m.ID, Position: origin}, param: "text"},
		{name: "missing mind map", in: NodeInput{Text: "t", Position: origin}, param: "mindmap_id"},
		{name: "unknown shape", in: NodeInput{MindMapID: m.ID, Text: "t", Position: origin, Styling: &NodeStylingInput{Shape: "hexagon"}}, param: "styling.shape"},
		{name: "negative level", in: NodeInput{MindMapID: m.ID, Text: "t", Position: origin, Level: -1}, param: "level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), user.ID, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.param, verr.Errors[0].Param)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Node{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNodes_CreateInForeignMindMap(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	intruder := createUser(t, db, "intruder")
	m := createMindMap(t, db, owner.ID, "Private")
	svc := NewNodes(db, NewGuard(db))

	_, err := svc.Create(context.Background(), intruder.ID, NodeInput{
		MindMapID: m.ID,
		Text:      "sneaky",
		Position:  &PositionInput{X: num("0"), Y: num("0")},
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Create(context.Background(), owner.ID, NodeInput{
		MindMapID: "missing",
		Text:      "lost",
		Position:  &PositionInput{X: num("0"), Y: num("0")},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNodes_UpdateKeepsUnsetFields(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	intruder := createUser(t, db, "intruder")
	m := createMindMap(t, db, owner.ID, "Map")
	svc := NewNodes(db, NewGuard(db))
	ctx := context.Background()

	node, err := svc.Create(ctx, owner.ID, NodeInput{
		MindMapID: m.ID,
		Text:      "Original",
		Position:  &PositionInput{X: num("1"), Y: num("2")},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, intruder.ID, node.ID, NodePatch{Text: ptr("Hijacked")})
	assert.ErrorIs(t, err, ErrUnauthorized)

	updated, err := svc.Update(ctx, owner.ID, node.ID, NodePatch{
		Position: &PositionInput{X: num("10"), Y: num(`"20"`)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Original", updated.Text)
	assert.Equal(t, models.Position{X: 10, Y: 20}, updated.Position)

	_, err = svc.Update(ctx, owner.ID, "missing", NodePatch{Text: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNodes_DeleteRemovesSubtree(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	m := createMindMap(t, db, user.ID, "Trip Plan")
	other := createMindMap(t, db, user.ID, "Other")
	svc := NewNodes(db, NewGuard(db))
	ctx := context.Background()

	add := func(mapID, text string, parent *models.Node) *models.Node {
		in := NodeInput{MindMapID: mapID, Text: text, Position: &PositionInput{X: num("0"), Y: num("0")}}
		if parent != nil {
			in.ParentID = &parent.ID
			in.Level = parent.Level + 1
		}
		n, err := svc.Create(ctx, user.ID, in)
		require.NoError(t, err)
		return n
	}

	root := add(m.ID, "Root", nil)
	child := add(m.ID, "Flights", root)
	add(m.ID, "Seats", child)
	add(m.ID, "Hotels", root)
	unrelated := add(other.ID, "Elsewhere", nil)

	removed, err := svc.Delete(ctx, user.ID, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	nodes, err := svc.ListForMindMap(ctx, user.ID, m.ID)
	require.NoError(t, err)
	assert.Empty(t, nodes)

	remaining, err := svc.ListForMindMap(ctx, user.ID, other.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, unrelated.ID, remaining[0].ID)
}

func TestNodes_DeleteLeafOnly(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	m := createMindMap(t, db, user.ID, "Map")
	svc := NewNodes(db, NewGuard(db))
	ctx := context.Background()

	root, err := svc.Create(ctx, user.ID, NodeInput{MindMapID: m.ID, Text: "Root", Position: &PositionInput{X: num("0"), Y: num("0")}})
	require.NoError(t, err)
	leaf, err := svc.Create(ctx, user.ID, NodeInput{MindMapID: m.ID, Text: "Leaf", ParentID: &root.ID, Level: 1, Position: &PositionInput{X: num("0"), Y: num("0")}})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, user.ID, leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	nodes, err := svc.ListForMindMap(ctx, user.ID, m.ID)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, root.ID, nodes[0].ID)
}

func TestNodes_DeleteTerminatesOnCycle(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	m := createMindMap(t, db, user.ID, "Loop")
	ctx := context.Background()

	a := &models.Node{Base: models.Base{ID: "node-a"}, MindMapID: m.ID, Text: "A", ParentID: ptr("node-b")}
	b := &models.Node{Base: models.Base{ID: "node-b"}, MindMapID: m.ID, Text: "B", ParentID: ptr("node-a")}
	require.NoError(t, db.Create(a).Error)
	require.NoError(t, db.Create(b).Error)

	removed, err := NewNodes(db, NewGuard(db)).Delete(ctx, user.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var count int64
	require.NoError(t, db.Model(&models.Node{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNodes_DeleteByStrangerKeepsTree(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	intruder := createUser(t, db, "intruder")
	m := createMindMap(t, db, owner.ID, "Map")
	svc := NewNodes(db, NewGuard(db))
	ctx := context.Background()

	root, err := svc.Create(ctx, owner.ID, NodeInput{MindMapID: m.ID, Text: "Root", Position: &PositionInput{X: num("0"), Y: num("0")}})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, intruder.ID, root.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Delete(ctx, owner.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	nodes, err := svc.ListForMindMap(ctx, owner.ID, m.ID)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}
