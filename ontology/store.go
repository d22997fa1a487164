package ontology

import (
	"log/slog"
	"time"

	"github.com/thdiaman/OntologyAPI/errors"
	"github.com/thdiaman/OntologyAPI/metric"
	"github.com/thdiaman/OntologyAPI/vocabulary"
)

// Individual is a named entity instance with its ordered class memberships.
type Individual struct {
	ID      string
	Classes []string
}

// Stats summarizes the current store contents.
type Stats struct {
	Classes     int
	Individuals int
	Facts       int
}

// Store owns the set of classes, individuals, and relation facts of one
// ontology. All identifier arguments to its methods are qualified against
// the store's namespace before use, so callers may pass short names or
// full identifiers interchangeably.
//
// Store does no internal locking; callers requiring concurrent access must
// serialize externally (one writer or many readers at a time).
type Store struct {
	ns vocabulary.Namespace

	classes    map[string]struct{}
	classOrder []string

	individuals map[string]*Individual
	indivOrder  []string

	facts       []*Fact
	bySubject   map[string][]*Fact
	byPredicate map[string][]*Fact
	seq         uint64

	metrics *metric.Metrics
	logger  *slog.Logger
}

// NewStore creates an empty store for the given namespace. metrics and
// logger may be nil; a nil logger falls back to slog.Default().
func NewStore(ns vocabulary.Namespace, metrics *metric.Metrics, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		ns:          ns,
		classes:     make(map[string]struct{}),
		individuals: make(map[string]*Individual),
		bySubject:   make(map[string][]*Fact),
		byPredicate: make(map[string][]*Fact),
		metrics:     metrics,
		logger:      logger,
	}
}

// Namespace returns the namespace qualifying this store's identifiers.
func (s *Store) Namespace() vocabulary.Namespace {
	return s.ns
}

// record reports one operation outcome to the metrics sink and refreshes
// the size gauges.
func (s *Store) record(op string, start time.Time, err error) {
	s.metrics.RecordOperation(op, time.Since(start), err)
	s.metrics.SetGraphSize(len(s.individuals), len(s.facts))
}

// DefineClass declares a class. Declaring the same class twice is a no-op.
func (s *Store) DefineClass(name string) {
	start := time.Now()
	id := s.ns.Qualify(name)
	if _, ok := s.classes[id]; !ok {
		s.classes[id] = struct{}{}
		s.classOrder = append(s.classOrder, id)
		s.logger.Debug("class defined", "class", id)
	}
	s.record("define_class", start, nil)
}

// HasClass reports whether a class has been declared.
func (s *Store) HasClass(name string) bool {
	_, ok := s.classes[s.ns.Qualify(name)]
	return ok
}

// Classes returns the declared class identifiers in declaration order.
func (s *Store) Classes() []string {
	out := make([]string, len(s.classOrder))
	copy(out, s.classOrder)
	return out
}

// AddIndividual creates an individual tagged with the given class, or adds
// the class as a further membership when the individual already exists.
// Fails with ErrUnknownClass when the class has not been declared.
func (s *Store) AddIndividual(class, name string) error {
	start := time.Now()
	err := s.addIndividual(class, name)
	s.record("add_individual", start, err)
	return err
}

func (s *Store) addIndividual(class, name string) error {
	classID := s.ns.Qualify(class)
	if _, ok := s.classes[classID]; !ok {
		return errors.UnknownClass("Store", "AddIndividual", classID)
	}

	id := s.ns.Qualify(name)
	ind, ok := s.individuals[id]
	if !ok {
		ind = &Individual{ID: id}
		s.individuals[id] = ind
		s.indivOrder = append(s.indivOrder, id)
	}
	for _, c := range ind.Classes {
		if c == classID {
			return nil
		}
	}
	ind.Classes = append(ind.Classes, classID)
	s.logger.Debug("individual added", "individual", id, "class", classID)
	return nil
}

// RemoveIndividual deletes an individual and cascades, removing every fact
// where it appears as subject or object. Fails with ErrNotFound when the
// individual does not exist. The cascade is atomic: validation happens
// before any mutation.
func (s *Store) RemoveIndividual(name string) error {
	start := time.Now()
	err := s.removeIndividual(name)
	s.record("remove_individual", start, err)
	return err
}

func (s *Store) removeIndividual(name string) error {
	id := s.ns.Qualify(name)
	if _, ok := s.individuals[id]; !ok {
		return errors.NotFound("Store", "RemoveIndividual", id)
	}

	removed := 0
	s.removeFacts(func(f *Fact) bool {
		hit := f.Subject == id || (f.Object.Kind == KindIRI && f.Object.IRI == id)
		if hit {
			removed++
		}
		return hit
	})

	delete(s.individuals, id)
	s.indivOrder = excise(s.indivOrder, id)

	s.logger.Debug("individual removed", "individual", id, "facts_removed", removed)
	return nil
}

// RemoveProperty removes exactly one fact with the given subject and
// predicate: the first inserted when several share the predicate. Fails
// with ErrNotFound when the individual does not exist or no fact matches.
func (s *Store) RemoveProperty(name, property string) error {
	start := time.Now()
	err := s.removeProperty(name, property)
	s.record("remove_property", start, err)
	return err
}

func (s *Store) removeProperty(name, property string) error {
	id := s.ns.Qualify(name)
	if _, ok := s.individuals[id]; !ok {
		return errors.NotFound("Store", "RemoveProperty", id)
	}
	propID := s.ns.Qualify(property)

	target := s.firstFact(id, propID)
	if target == nil {
		return errors.NotFound("Store", "RemoveProperty", id+" "+propID)
	}

	s.removeFacts(func(f *Fact) bool { return f == target })
	s.logger.Debug("property removed", "individual", id, "property", propID, "seq", target.Seq)
	return nil
}

// RemoveRelatedIndividuals deletes every individual that is the object of
// a (name, property, ?) fact, cascading each deletion. The target set is
// snapshotted in insertion order before any mutation, so deletion order is
// deterministic within one call. Literal objects are skipped. Fails with
// ErrNotFound when the source individual does not exist.
func (s *Store) RemoveRelatedIndividuals(name, property string) error {
	start := time.Now()
	err := s.removeRelatedIndividuals(name, property)
	s.record("remove_related_individuals", start, err)
	return err
}

func (s *Store) removeRelatedIndividuals(name, property string) error {
	id := s.ns.Qualify(name)
	if _, ok := s.individuals[id]; !ok {
		return errors.NotFound("Store", "RemoveRelatedIndividuals", id)
	}
	propID := s.ns.Qualify(property)

	// Snapshot the targets before mutating; the cascade below rewrites the
	// fact set we would otherwise be iterating.
	seen := make(map[string]struct{})
	var targets []string
	for _, f := range s.bySubject[id] {
		if f.Predicate != propID || f.Object.Kind != KindIRI {
			continue
		}
		if _, dup := seen[f.Object.IRI]; dup {
			continue
		}
		seen[f.Object.IRI] = struct{}{}
		targets = append(targets, f.Object.IRI)
	}

	for _, target := range targets {
		if _, ok := s.individuals[target]; !ok {
			continue
		}
		if err := s.removeIndividual(target); err != nil {
			return errors.Wrap(err, "Store", "RemoveRelatedIndividuals", "cascade")
		}
	}

	s.logger.Debug("related individuals removed",
		"individual", id, "property", propID, "count", len(targets))
	return nil
}

// AddRelation inserts a relation fact between two existing individuals.
// Duplicate facts are permitted and stored as separate rows. Fails with
// ErrNotFound when either individual does not exist.
func (s *Store) AddRelation(subject, property, object string) error {
	start := time.Now()
	err := s.addRelation(subject, property, object)
	s.record("add_relation", start, err)
	return err
}

func (s *Store) addRelation(subject, property, object string) error {
	subjID := s.ns.Qualify(subject)
	if _, ok := s.individuals[subjID]; !ok {
		return errors.NotFound("Store", "AddRelation", subjID)
	}
	objID := s.ns.Qualify(object)
	if _, ok := s.individuals[objID]; !ok {
		return errors.NotFound("Store", "AddRelation", objID)
	}

	s.appendFact(subjID, s.ns.Qualify(property), IRIValue(objID))
	return nil
}

// AddStringProperty inserts a fact whose object is a string literal.
// Fails with ErrNotFound when the individual does not exist.
func (s *Store) AddStringProperty(name, property, value string) error {
	start := time.Now()
	err := s.addLiteral(name, property, StringValue(value), "AddStringProperty")
	s.record("add_string_property", start, err)
	return err
}

// AddFloatProperty inserts a fact whose object is a float literal.
// Fails with ErrNotFound when the individual does not exist.
func (s *Store) AddFloatProperty(name, property string, value float64) error {
	start := time.Now()
	err := s.addLiteral(name, property, FloatValue(value), "AddFloatProperty")
	s.record("add_float_property", start, err)
	return err
}

func (s *Store) addLiteral(name, property string, v Value, method string) error {
	id := s.ns.Qualify(name)
	if _, ok := s.individuals[id]; !ok {
		return errors.NotFound("Store", method, id)
	}
	s.appendFact(id, s.ns.Qualify(property), v)
	return nil
}

// RelatedIndividualNames returns the local names of every individual
// linked from name via property, in fact-insertion order. Literal objects
// are excluded. The slice is empty when nothing is linked. Fails with
// ErrNotFound when the individual does not exist.
func (s *Store) RelatedIndividualNames(name, property string) ([]string, error) {
	id := s.ns.Qualify(name)
	if _, ok := s.individuals[id]; !ok {
		return nil, errors.NotFound("Store", "RelatedIndividualNames", id)
	}
	propID := s.ns.Qualify(property)

	names := []string{}
	for _, f := range s.bySubject[id] {
		if f.Predicate == propID && f.Object.Kind == KindIRI {
			names = append(names, s.ns.LocalName(f.Object.IRI))
		}
	}
	return names, nil
}

// PropertyValue returns the object of the first-inserted fact matching
// subject and predicate. Fails with ErrNotFound when the individual does
// not exist or no fact matches. When several facts share the predicate the
// lowest-sequence one wins.
func (s *Store) PropertyValue(name, property string) (Value, error) {
	id := s.ns.Qualify(name)
	if _, ok := s.individuals[id]; !ok {
		return Value{}, errors.NotFound("Store", "PropertyValue", id)
	}
	propID := s.ns.Qualify(property)

	if f := s.firstFact(id, propID); f != nil {
		return f.Object, nil
	}
	return Value{}, errors.NotFound("Store", "PropertyValue", id+" "+propID)
}

// HasIndividual reports whether an individual exists.
func (s *Store) HasIndividual(name string) bool {
	_, ok := s.individuals[s.ns.Qualify(name)]
	return ok
}

// Memberships returns the class identifiers of an individual in the order
// the memberships were added. Fails with ErrNotFound when the individual
// does not exist.
func (s *Store) Memberships(name string) ([]string, error) {
	id := s.ns.Qualify(name)
	ind, ok := s.individuals[id]
	if !ok {
		return nil, errors.NotFound("Store", "Memberships", id)
	}
	out := make([]string, len(ind.Classes))
	copy(out, ind.Classes)
	return out, nil
}

// Individuals returns all individuals in creation order.
func (s *Store) Individuals() []Individual {
	out := make([]Individual, 0, len(s.indivOrder))
	for _, id := range s.indivOrder {
		ind := s.individuals[id]
		classes := make([]string, len(ind.Classes))
		copy(classes, ind.Classes)
		out = append(out, Individual{ID: ind.ID, Classes: classes})
	}
	return out
}

// Facts returns a snapshot of all relation facts in insertion order.
func (s *Store) Facts() []Fact {
	out := make([]Fact, len(s.facts))
	for i, f := range s.facts {
		out[i] = *f
	}
	return out
}

// FactsByPredicate returns a snapshot of the facts carrying one predicate,
// in insertion order. The predicate is qualified before lookup.
func (s *Store) FactsByPredicate(property string) []Fact {
	facts := s.byPredicate[s.ns.Qualify(property)]
	out := make([]Fact, len(facts))
	for i, f := range facts {
		out[i] = *f
	}
	return out
}

// Stats returns current store sizes.
func (s *Store) Stats() Stats {
	return Stats{
		Classes:     len(s.classes),
		Individuals: len(s.individuals),
		Facts:       len(s.facts),
	}
}

// appendFact stores a fact and indexes it. Insertion order is the only
// ordering the store maintains.
func (s *Store) appendFact(subject, predicate string, object Value) {
	s.seq++
	f := &Fact{Subject: subject, Predicate: predicate, Object: object, Seq: s.seq}
	s.facts = append(s.facts, f)
	s.bySubject[subject] = append(s.bySubject[subject], f)
	s.byPredicate[predicate] = append(s.byPredicate[predicate], f)
	s.logger.Debug("fact added",
		"subject", subject, "predicate", predicate, "object", object.String(), "seq", f.Seq)
}

// firstFact returns the lowest-sequence fact for subject+predicate, or nil.
// Index slices are append-only between removals, so the first match is the
// first inserted.
func (s *Store) firstFact(subject, predicate string) *Fact {
	for _, f := range s.bySubject[subject] {
		if f.Predicate == predicate {
			return f
		}
	}
	return nil
}

// removeFacts excises every fact matching the predicate function from the
// fact list and both indexes, preserving relative order of the remainder.
func (s *Store) removeFacts(match func(*Fact) bool) {
	doomed := make(map[*Fact]struct{})
	for _, f := range s.facts {
		if match(f) {
			doomed[f] = struct{}{}
		}
	}
	if len(doomed) == 0 {
		return
	}

	s.facts = filterFacts(s.facts, doomed)
	for subject, facts := range s.bySubject {
		filtered := filterFacts(facts, doomed)
		if len(filtered) == 0 {
			delete(s.bySubject, subject)
		} else {
			s.bySubject[subject] = filtered
		}
	}
	for predicate, facts := range s.byPredicate {
		filtered := filterFacts(facts, doomed)
		if len(filtered) == 0 {
			delete(s.byPredicate, predicate)
		} else {
			s.byPredicate[predicate] = filtered
		}
	}
}

func filterFacts(facts []*Fact, doomed map[*Fact]struct{}) []*Fact {
	out := facts[:0:0]
	for _, f := range facts {
		if _, hit := doomed[f]; !hit {
			out = append(out, f)
		}
	}
	return out
}

func excise(list []string, id string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
