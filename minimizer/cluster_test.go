package minimizer

import (
	"reflect"
	"testing"

	"dpor/event"
)

func TestClockValuesAscendingAndDeduped(t *testing.T) {
	trace := []Annotated{
		{Clock: Clock{Value: 3, Has: true}},
		{Clock: Clock{Value: 1, Has: true}},
		{Clock: Clock{Value: 3, Has: true}},
		{Clock: Clock{Has: false}},
	}
	got := clockValues(trace)
	want := []int{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRemoveClusterKeepsUnclusteredAndOtherClusters(t *testing.T) {
	trace := []Annotated{
		{U: event.Unique{ID: 1}, Clock: Clock{Value: 1, Has: true}},
		{U: event.Unique{ID: 2}, Clock: Clock{Value: 2, Has: true}},
		{U: event.Unique{ID: 3}, Clock: Clock{Has: false}},
	}
	got := removeCluster(trace, 1)
	if len(got) != 2 {
		t.Fatalf("expected 2 survivors after removing cluster 1, got %d", len(got))
	}
	for _, a := range got {
		if a.U.ID == 1 {
			t.Fatalf("expected cluster 1's delivery to be removed")
		}
	}
}

func TestClusterIDs(t *testing.T) {
	trace := []Annotated{
		{U: event.Unique{ID: 1}, Clock: Clock{Value: 1, Has: true}},
		{U: event.Unique{ID: 2}, Clock: Clock{Value: 1, Has: true}},
		{U: event.Unique{ID: 3}, Clock: Clock{Value: 2, Has: true}},
	}
	got := clusterIDs(trace, 1)
	want := []event.ID{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
