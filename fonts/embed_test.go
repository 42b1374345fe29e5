package fonts

import "testing"

func TestLoadAcceptsEmbedPrefix(t *testing.T) {
	for _, name := range Names() {
		plain, err := Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		prefixed, err := Load("embed:" + name)
		if err != nil {
			t.Fatalf("load embed:%s: %v", name, err)
		}
		if len(plain) == 0 || len(plain) != len(prefixed) {
			t.Fatalf("%s: inconsistent data", name)
		}
	}
	if _, err := Load("Inter-Regular.ttf"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
}

func TestSelectCoversEveryFace(t *testing.T) {
	seen := map[string]bool{}
	for _, mono := range []bool{false, true} {
		for _, bold := range []bool{false, true} {
			for _, italic := range []bool{false, true} {
				family, name := Select(mono, bold, italic)
				if _, err := Load(name); err != nil {
					t.Fatalf("Select(%v,%v,%v) returned unknown face %s", mono, bold, italic, name)
				}
				if mono && family != Monospace || !mono && family != Proportional {
					t.Fatalf("Select(%v,%v,%v) returned family %s", mono, bold, italic, family)
				}
				seen[name] = true
			}
		}
	}
	if len(seen) != len(Names()) {
		t.Fatalf("expected %d distinct faces, got %d", len(Names()), len(seen))
	}
}
