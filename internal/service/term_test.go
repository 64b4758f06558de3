package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dlalic/unpacking/internal/mocks"
	"github.com/dlalic/unpacking/internal/model"
	"github.com/dlalic/unpacking/internal/testutil"
)

func TestTerm_List_AttachesRelations(t *testing.T) {
	ctx := context.Background()
	termStore := &mocks.TermStore{}

	first := model.Term{ID: uuid.New(), Name: "ownership"}
	second := model.Term{ID: uuid.New(), Name: "borrowing"}
	third := model.Term{ID: uuid.New(), Name: "lifetimes"}

	termStore.On("List", mock.Anything).Return([]model.Term{first, second, third}, nil)
	termStore.On("ListRelated", mock.Anything).Return([]model.TermRelated{
		{TermID: first.ID, RelatedID: second.ID},
		{TermID: first.ID, RelatedID: third.ID},
		{TermID: third.ID, RelatedID: second.ID},
	}, nil)

	s := NewTerm(termStore, testutil.MakeNoopLogger())

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.ElementsMatch(t, []uuid.UUID{second.ID, third.ID}, got[0].Related)
	assert.Empty(t, got[1].Related)
	assert.Equal(t, []uuid.UUID{second.ID}, got[2].Related)
}

func TestTerm_Create(t *testing.T) {
	ctx := context.Background()
	termStore := &mocks.TermStore{}
	related := []uuid.UUID{uuid.New()}

	termStore.On("Create", mock.Anything,
		mock.MatchedBy(func(term model.Term) bool {
			return term.Name == "ownership" && term.ID != uuid.Nil
		}),
		related,
	).Return(uuid.New(), nil)

	s := NewTerm(termStore, testutil.MakeNoopLogger())

	id, err := s.Create(ctx, "ownership", related)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	termStore.AssertExpectations(t)
}

func TestTerm_Graph_Passthrough(t *testing.T) {
	ctx := context.Background()
	termStore := &mocks.TermStore{}
	graph := model.TermGraph{Names: []string{"a", "b"}, Edges: [][2]int{{0, 1}}}

	termStore.On("Graph", mock.Anything).Return(graph, nil)

	s := NewTerm(termStore, testutil.MakeNoopLogger())

	got, err := s.Graph(ctx)
	require.NoError(t, err)
	assert.Equal(t, graph, got)
}
