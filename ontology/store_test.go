package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thdiaman/OntologyAPI/errors"
	"github.com/thdiaman/OntologyAPI/vocabulary"
)

const testNS = "http://example.org/kb"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(vocabulary.New(testNS), nil, nil)
}

// newPeopleStore returns a store with a Person class and alice/bob
// individuals, the fixture most scenario tests start from.
func newPeopleStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)
	s.DefineClass("Person")
	require.NoError(t, s.AddIndividual("Person", "alice"))
	require.NoError(t, s.AddIndividual("Person", "bob"))
	return s
}

func TestDefineClass(t *testing.T) {
	s := newTestStore(t)

	s.DefineClass("Person")
	s.DefineClass("Robot")
	s.DefineClass("Person") // duplicate is a no-op

	assert.True(t, s.HasClass("Person"))
	assert.True(t, s.HasClass(testNS+"#Person")) // qualified form resolves too
	assert.False(t, s.HasClass("Animal"))
	assert.Equal(t, []string{testNS + "#Person", testNS + "#Robot"}, s.Classes())
}

func TestAddIndividual(t *testing.T) {
	t.Run("unknown class fails", func(t *testing.T) {
		s := newTestStore(t)
		err := s.AddIndividual("NoSuchClass", "x")
		require.Error(t, err)
		assert.True(t, errors.IsUnknownClass(err))
		assert.False(t, s.HasIndividual("x"))
	})

	t.Run("creates with membership", func(t *testing.T) {
		s := newTestStore(t)
		s.DefineClass("Person")
		require.NoError(t, s.AddIndividual("Person", "alice"))

		assert.True(t, s.HasIndividual("alice"))
		classes, err := s.Memberships("alice")
		require.NoError(t, err)
		assert.Equal(t, []string{testNS + "#Person"}, classes)
	})

	t.Run("second class adds membership", func(t *testing.T) {
		s := newTestStore(t)
		s.DefineClass("Person")
		s.DefineClass("Pilot")
		require.NoError(t, s.AddIndividual("Person", "alice"))
		require.NoError(t, s.AddIndividual("Pilot", "alice"))

		classes, err := s.Memberships("alice")
		require.NoError(t, err)
		assert.Equal(t, []string{testNS + "#Person", testNS + "#Pilot"}, classes)
	})

	t.Run("duplicate membership is a no-op", func(t *testing.T) {
		s := newTestStore(t)
		s.DefineClass("Person")
		require.NoError(t, s.AddIndividual("Person", "alice"))
		require.NoError(t, s.AddIndividual("Person", "alice"))

		classes, err := s.Memberships("alice")
		require.NoError(t, err)
		assert.Len(t, classes, 1)
	})

	t.Run("short name sanitized", func(t *testing.T) {
		s := newTestStore(t)
		s.DefineClass("Person")
		require.NoError(t, s.AddIndividual("Person", "field operator"))
		assert.True(t, s.HasIndividual("field_operator"))
	})
}

func TestAddRelation(t *testing.T) {
	t.Run("links two individuals", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddRelation("alice", "knows", "bob"))

		names, err := s.RelatedIndividualNames("alice", "knows")
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, names)
	})

	t.Run("missing subject fails", func(t *testing.T) {
		s := newPeopleStore(t)
		err := s.AddRelation("carol", "knows", "bob")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("missing object fails", func(t *testing.T) {
		s := newPeopleStore(t)
		err := s.AddRelation("alice", "knows", "carol")
		assert.True(t, errors.IsNotFound(err))
		assert.Zero(t, s.Stats().Facts)
	})

	t.Run("duplicates create duplicate rows", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddRelation("alice", "knows", "bob"))
		require.NoError(t, s.AddRelation("alice", "knows", "bob"))
		assert.Equal(t, 2, s.Stats().Facts)
	})
}

func TestMultiValuedPropertyPreservesOrder(t *testing.T) {
	s := newTestStore(t)
	s.DefineClass("Person")
	require.NoError(t, s.AddIndividual("Person", "alice"))

	others := []string{"bob", "carol", "dave", "erin"}
	for _, o := range others {
		require.NoError(t, s.AddIndividual("Person", o))
		require.NoError(t, s.AddRelation("alice", "knows", o))
	}

	names, err := s.RelatedIndividualNames("alice", "knows")
	require.NoError(t, err)
	assert.Equal(t, others, names)
}

func TestRelatedIndividualNames(t *testing.T) {
	t.Run("missing individual fails", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.RelatedIndividualNames("ghost", "knows")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("no links yields empty slice", func(t *testing.T) {
		s := newPeopleStore(t)
		names, err := s.RelatedIndividualNames("alice", "knows")
		require.NoError(t, err)
		assert.Empty(t, names)
		assert.NotNil(t, names)
	})

	t.Run("literal objects excluded", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddStringProperty("alice", "knows", "not an individual"))
		require.NoError(t, s.AddRelation("alice", "knows", "bob"))

		names, err := s.RelatedIndividualNames("alice", "knows")
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, names)
	})
}

func TestLiteralProperties(t *testing.T) {
	t.Run("float round trip", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddFloatProperty("alice", "age", 30.0))

		v, err := s.PropertyValue("alice", "age")
		require.NoError(t, err)
		assert.Equal(t, KindFloat, v.Kind)
		assert.Equal(t, 30.0, v.Float)
	})

	t.Run("string round trip", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddStringProperty("alice", "callsign", "ALPHA 1"))

		v, err := s.PropertyValue("alice", "callsign")
		require.NoError(t, err)
		assert.Equal(t, KindString, v.Kind)
		assert.Equal(t, "ALPHA 1", v.Str)
	})

	t.Run("missing individual fails", func(t *testing.T) {
		s := newTestStore(t)
		assert.True(t, errors.IsNotFound(s.AddFloatProperty("ghost", "age", 1)))
		assert.True(t, errors.IsNotFound(s.AddStringProperty("ghost", "name", "x")))
	})

	t.Run("missing property fails", func(t *testing.T) {
		s := newPeopleStore(t)
		_, err := s.PropertyValue("alice", "age")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("first inserted wins", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddFloatProperty("alice", "age", 30.0))
		require.NoError(t, s.AddFloatProperty("alice", "age", 31.0))

		v, err := s.PropertyValue("alice", "age")
		require.NoError(t, err)
		assert.Equal(t, 30.0, v.Float)
	})
}

func TestRemoveIndividualCascades(t *testing.T) {
	s := newPeopleStore(t)
	require.NoError(t, s.AddIndividual("Person", "carol"))
	require.NoError(t, s.AddRelation("alice", "knows", "bob"))
	require.NoError(t, s.AddRelation("bob", "knows", "carol"))
	require.NoError(t, s.AddRelation("carol", "knows", "bob"))
	require.NoError(t, s.AddFloatProperty("bob", "age", 41))

	require.NoError(t, s.RemoveIndividual("bob"))

	assert.False(t, s.HasIndividual("bob"))
	bobID := testNS + "#bob"
	for _, f := range s.Facts() {
		assert.NotEqual(t, bobID, f.Subject)
		if f.Object.Kind == KindIRI {
			assert.NotEqual(t, bobID, f.Object.IRI)
		}
	}

	// alice and carol survive with their unrelated facts intact
	assert.True(t, s.HasIndividual("alice"))
	assert.True(t, s.HasIndividual("carol"))
	names, err := s.RelatedIndividualNames("alice", "knows")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRemoveIndividualNotFound(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, errors.IsNotFound(s.RemoveIndividual("ghost")))
}

func TestScenarioKnowsThenRemove(t *testing.T) {
	s := newTestStore(t)
	s.DefineClass("Person")
	require.NoError(t, s.AddIndividual("Person", "alice"))
	require.NoError(t, s.AddIndividual("Person", "bob"))
	require.NoError(t, s.AddRelation("alice", "knows", "bob"))

	names, err := s.RelatedIndividualNames("alice", "knows")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, names)

	require.NoError(t, s.RemoveIndividual("bob"))

	names, err = s.RelatedIndividualNames("alice", "knows")
	require.NoError(t, err)
	assert.Equal(t, []string{}, names)
}

func TestRemoveProperty(t *testing.T) {
	t.Run("removes first inserted of several", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddFloatProperty("alice", "age", 30.0))
		require.NoError(t, s.AddFloatProperty("alice", "age", 31.0))

		require.NoError(t, s.RemoveProperty("alice", "age"))

		v, err := s.PropertyValue("alice", "age")
		require.NoError(t, err)
		assert.Equal(t, 31.0, v.Float)
	})

	t.Run("missing individual fails", func(t *testing.T) {
		s := newTestStore(t)
		assert.True(t, errors.IsNotFound(s.RemoveProperty("ghost", "age")))
	})

	t.Run("missing fact fails", func(t *testing.T) {
		s := newPeopleStore(t)
		assert.True(t, errors.IsNotFound(s.RemoveProperty("alice", "age")))
	})

	t.Run("removes relation facts too", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddRelation("alice", "knows", "bob"))
		require.NoError(t, s.RemoveProperty("alice", "knows"))
		assert.Zero(t, s.Stats().Facts)
		assert.True(t, s.HasIndividual("bob")) // target survives
	})
}

func TestRemoveRelatedIndividuals(t *testing.T) {
	t.Run("deletes all linked targets", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddIndividual("Person", "carol"))
		require.NoError(t, s.AddRelation("alice", "knows", "bob"))
		require.NoError(t, s.AddRelation("alice", "knows", "carol"))
		require.NoError(t, s.AddRelation("bob", "knows", "carol"))

		require.NoError(t, s.RemoveRelatedIndividuals("alice", "knows"))

		assert.True(t, s.HasIndividual("alice"))
		assert.False(t, s.HasIndividual("bob"))
		assert.False(t, s.HasIndividual("carol"))
		assert.Zero(t, s.Stats().Facts)
	})

	t.Run("duplicate links handled once", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddRelation("alice", "knows", "bob"))
		require.NoError(t, s.AddRelation("alice", "knows", "bob"))

		require.NoError(t, s.RemoveRelatedIndividuals("alice", "knows"))
		assert.False(t, s.HasIndividual("bob"))
	})

	t.Run("literal objects skipped", func(t *testing.T) {
		s := newPeopleStore(t)
		require.NoError(t, s.AddStringProperty("alice", "knows", "just a note"))

		require.NoError(t, s.RemoveRelatedIndividuals("alice", "knows"))
		assert.True(t, s.HasIndividual("alice"))
	})

	t.Run("missing individual fails", func(t *testing.T) {
		s := newTestStore(t)
		assert.True(t, errors.IsNotFound(s.RemoveRelatedIndividuals("ghost", "knows")))
	})
}

func TestFactsSnapshotOrder(t *testing.T) {
	s := newPeopleStore(t)
	require.NoError(t, s.AddRelation("alice", "knows", "bob"))
	require.NoError(t, s.AddFloatProperty("alice", "age", 30))
	require.NoError(t, s.AddStringProperty("bob", "callsign", "BRAVO"))

	facts := s.Facts()
	require.Len(t, facts, 3)
	assert.Equal(t, KindIRI, facts[0].Object.Kind)
	assert.Equal(t, KindFloat, facts[1].Object.Kind)
	assert.Equal(t, KindString, facts[2].Object.Kind)
	assert.Less(t, facts[0].Seq, facts[1].Seq)
	assert.Less(t, facts[1].Seq, facts[2].Seq)
}

func TestFactsByPredicate(t *testing.T) {
	s := newPeopleStore(t)
	require.NoError(t, s.AddRelation("alice", "knows", "bob"))
	require.NoError(t, s.AddFloatProperty("alice", "age", 30))

	knows := s.FactsByPredicate("knows")
	require.Len(t, knows, 1)
	assert.Equal(t, testNS+"#alice", knows[0].Subject)

	assert.Empty(t, s.FactsByPredicate("likes"))
}

func TestStats(t *testing.T) {
	s := newPeopleStore(t)
	require.NoError(t, s.AddRelation("alice", "knows", "bob"))

	stats := s.Stats()
	assert.Equal(t, Stats{Classes: 1, Individuals: 2, Facts: 1}, stats)
}
