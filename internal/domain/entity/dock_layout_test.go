package entity

import "testing"

func buildTestLayout() *DockLayout {
	l := NewDockLayout()
	l.Left = GroupNode(NewPanelGroup("gl", RegionLeft, NewPanel("files", "Files")))
	l.Center = SplitBranch(NewSplitNode("s1", OrientationHorizontal,
		GroupNode(NewPanelGroup("gc1", RegionCenter, NewPanel("editor", "Editor"))),
		GroupNode(NewPanelGroup("gc2", RegionCenter, NewPanel("preview", "Preview"))),
		0.6))
	float := NewPanelGroup("gf", RegionFloating, NewPanel("palette", "Palette"))
	l.FloatingGroups = append(l.FloatingGroups, float)
	l.FloatingGeometry[float.ID] = FloatGeometry{X: 10, Y: 10, W: 300, H: 200}
	l.MinimizedPanels = append(l.MinimizedPanels, NewPanel("terminal", "Terminal"))
	return l
}

func TestDockLayout_NodeFloatingReadsEmpty(t *testing.T) {
	l := buildTestLayout()
	if !l.Node(RegionFloating).IsEmpty() {
		t.Error("floating region should read as an empty tree slot")
	}
	if !l.Node("bogus").IsEmpty() {
		t.Error("unknown region should read as an empty tree slot")
	}
}

func TestDockLayout_SetNodeFloatingIsNoop(t *testing.T) {
	l := NewDockLayout()
	l.SetNode(RegionFloating, GroupNode(NewPanelGroup("g", RegionFloating, NewPanel("a", "A"))))
	if len(l.FloatingGroups) != 0 || !l.Node(RegionFloating).IsEmpty() {
		t.Error("SetNode(floating) must not attach anything")
	}
}

func TestDockLayout_Size(t *testing.T) {
	container := Size{W: 1200, H: 800}
	tests := []struct {
		name     string
		region   Region
		collapse bool
		want     Size
	}{
		{name: "left expanded", region: RegionLeft, want: Size{W: DefaultSideSize, H: 800}},
		{name: "left collapsed", region: RegionLeft, collapse: true, want: Size{W: CollapsedFootprint, H: 800}},
		{name: "bottom expanded", region: RegionBottom, want: Size{W: 1200, H: DefaultBottomSize}},
		{name: "bottom collapsed", region: RegionBottom, collapse: true, want: Size{W: 1200, H: CollapsedFootprint}},
		{name: "center gets container", region: RegionCenter, want: container},
		{name: "floating gets container", region: RegionFloating, want: container},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewDockLayout()
			if tt.collapse {
				l.ToggleCollapse(tt.region)
			}
			if got := l.Size(tt.region, container); got != tt.want {
				t.Errorf("Size(%s) = %+v, want %+v", tt.region, got, tt.want)
			}
		})
	}
}

func TestDockLayout_ToggleCollapseRoundTrip(t *testing.T) {
	l := NewDockLayout()
	container := Size{W: 1200, H: 800}
	before := l.Size(RegionRight, container)

	l.ToggleCollapse(RegionRight)
	if !l.IsCollapsed(RegionRight) {
		t.Fatal("right edge should be collapsed after toggle")
	}
	l.ToggleCollapse(RegionRight)
	if l.IsCollapsed(RegionRight) {
		t.Fatal("right edge should be expanded after second toggle")
	}
	if after := l.Size(RegionRight, container); after != before {
		t.Errorf("size after round trip = %+v, want %+v", after, before)
	}
}

func TestDockLayout_ToggleCollapseCenterIsNoop(t *testing.T) {
	l := NewDockLayout()
	l.ToggleCollapse(RegionCenter)
	l.ToggleCollapse(RegionFloating)
	if l.IsCollapsed(RegionCenter) || l.IsCollapsed(RegionFloating) {
		t.Error("center and floating must never collapse")
	}
}

func TestDockLayout_FindPanelGroup(t *testing.T) {
	l := buildTestLayout()
	tests := []struct {
		name      string
		panel     PanelID
		wantGroup GroupID
		wantFound bool
	}{
		{name: "tree panel", panel: "editor", wantGroup: "gc1", wantFound: true},
		{name: "floating panel", panel: "palette", wantGroup: "gf", wantFound: true},
		{name: "minimized reports not found", panel: "terminal", wantFound: false},
		{name: "absent id", panel: "ghost", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := l.FindPanelGroup(tt.panel)
			if tt.wantFound {
				if g == nil || g.ID != tt.wantGroup {
					t.Errorf("FindPanelGroup(%s) = %v, want %s", tt.panel, g, tt.wantGroup)
				}
				return
			}
			if g != nil {
				t.Errorf("FindPanelGroup(%s) = %v, want nil", tt.panel, g)
			}
		})
	}

	if !l.IsMinimized("terminal") {
		t.Error("IsMinimized(terminal) = false, want true")
	}
}

func TestDockLayout_AllPanelsOrdering(t *testing.T) {
	l := buildTestLayout()
	want := []PanelID{"files", "editor", "preview", "palette"}

	first := l.AllPanels()
	if len(first) != len(want) {
		t.Fatalf("AllPanels() returned %d panels, want %d", len(first), len(want))
	}
	for i, p := range first {
		if p.ID != want[i] {
			t.Errorf("AllPanels()[%d] = %s, want %s", i, p.ID, want[i])
		}
	}

	// Deterministic: repeated calls return the same sequence.
	second := l.AllPanels()
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("ordering changed between calls at index %d", i)
		}
	}
}

func TestDockLayout_PanelCount(t *testing.T) {
	l := buildTestLayout()
	if got := l.PanelCount(); got != 5 {
		t.Errorf("PanelCount() = %d, want 5", got)
	}
}

func TestDockLayout_CustomCollapsedSize(t *testing.T) {
	container := Size{W: 1200, H: 800}
	l := NewDockLayout()
	l.CollapsedSize = 32
	l.ToggleCollapse(RegionLeft)

	if got := l.Size(RegionLeft, container); got != (Size{W: 32, H: 800}) {
		t.Errorf("Size(left) = %+v, want {32 800}", got)
	}

	l.CollapsedSize = 0
	if got := l.Size(RegionLeft, container); got != (Size{W: CollapsedFootprint, H: 800}) {
		t.Errorf("Size(left) with zero CollapsedSize = %+v, want the default footprint", got)
	}
}
