package leagues

import "testing"

func TestLookupNormalizesKey(t *testing.T) {
	l, ok := Lookup("  NBA ")
	if !ok {
		t.Fatalf("expected nba to be registered")
	}
	if l.Key != "nba" || l.Scores != (ScoreRange{Min: 95, Max: 130}) {
		t.Fatalf("unexpected league %+v", l)
	}
	if _, ok := Lookup("cricket"); ok {
		t.Fatalf("expected unknown league to be missing")
	}
}

func TestResolveFallsBackToBaseball(t *testing.T) {
	l := Resolve("curling")
	if l.Key != DefaultKey {
		t.Fatalf("expected fallback to %s, got %s", DefaultKey, l.Key)
	}
}

func TestRegistryTablesAreUsable(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range All() {
		if seen[l.Key] {
			t.Fatalf("duplicate key %s", l.Key)
		}
		seen[l.Key] = true
		if len(l.Roster) < 2 {
			t.Fatalf("%s roster too small", l.Key)
		}
		if len(l.Statuses) == 0 {
			t.Fatalf("%s has no statuses", l.Key)
		}
		if l.Scores.Min < 0 || l.Scores.Max < l.Scores.Min {
			t.Fatalf("%s has invalid score range %+v", l.Key, l.Scores)
		}
		if l.ScoreboardPath == "" {
			t.Fatalf("%s has no scoreboard path", l.Key)
		}
	}
}

func TestKeysMatchAll(t *testing.T) {
	keys := Keys()
	all := All()
	if len(keys) != len(all) {
		t.Fatalf("expected %d keys, got %d", len(all), len(keys))
	}
	for i := range keys {
		if keys[i] != all[i].Key {
			t.Fatalf("expected key %s at %d, got %s", all[i].Key, i, keys[i])
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Key = "mutated"
	if _, ok := Lookup("mlb"); !ok {
		t.Fatalf("expected registry to be unaffected by caller mutation")
	}
}
