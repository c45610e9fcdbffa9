package game

import "testing"

func TestAssignBlindsRotation(t *testing.T) {
	players := []*Player{
		NewPlayer(0, "a", 1000),
		NewPlayer(1, "b", 1000),
		NewPlayer(2, "c", 1000),
	}

	sb, bb, pot := AssignBlinds(players, 0, 10, 20)

	if sb != 1 || bb != 2 {
		t.Fatalf("dealer 0: got sb=%d bb=%d, want 1/2", sb, bb)
	}
	if pot != 30 {
		t.Errorf("pot = %d, want 30", pot)
	}
	if !players[0].Dealer || !players[1].SmallBlind || !players[2].BigBlind {
		t.Error("role flags not set on computed seats")
	}
	if players[1].Stack != 990 || players[2].Stack != 980 {
		t.Errorf("stacks = %d/%d, want 990/980", players[1].Stack, players[2].Stack)
	}
	if players[1].AmountInPot != 10 || players[2].AmountInPot != 20 {
		t.Errorf("amounts in pot = %d/%d, want 10/20", players[1].AmountInPot, players[2].AmountInPot)
	}
}

func TestAssignBlindsWrapsAndClearsStaleFlags(t *testing.T) {
	players := []*Player{
		NewPlayer(0, "a", 1000),
		NewPlayer(1, "b", 1000),
		NewPlayer(2, "c", 1000),
	}

	// Stale flags from a previous hand must be recomputed, not accumulated.
	players[0].BigBlind = true
	players[2].Dealer = true

	sb, bb, _ := AssignBlinds(players, 2, 10, 20)

	if sb != 0 || bb != 1 {
		t.Fatalf("dealer 2: got sb=%d bb=%d, want 0/1", sb, bb)
	}
	if players[0].BigBlind {
		t.Error("stale big blind flag survived reassignment")
	}
	if players[2].Dealer != true {
		t.Error("dealer flag missing")
	}
}

func TestAssignBlindsHeadsUp(t *testing.T) {
	players := []*Player{
		NewPlayer(0, "a", 1000),
		NewPlayer(1, "b", 1000),
	}

	// With two players the formula wraps the big blind back onto the dealer.
	sb, bb, pot := AssignBlinds(players, 0, 10, 20)
	if sb != 1 || bb != 0 {
		t.Fatalf("heads-up dealer 0: got sb=%d bb=%d, want 1/0", sb, bb)
	}
	if pot != 30 {
		t.Errorf("pot = %d, want 30", pot)
	}
}

func TestAssignBlindsClampsShortStacks(t *testing.T) {
	players := []*Player{
		NewPlayer(0, "a", 1000),
		NewPlayer(1, "b", 4),  // short small blind
		NewPlayer(2, "c", 12), // short big blind
	}

	_, _, pot := AssignBlinds(players, 0, 10, 20)

	if players[1].Stack != 0 || players[1].AmountInPot != 4 {
		t.Errorf("sb post = %d (stack %d), want all-in 4", players[1].AmountInPot, players[1].Stack)
	}
	if players[2].Stack != 0 || players[2].AmountInPot != 12 {
		t.Errorf("bb post = %d (stack %d), want all-in 12", players[2].AmountInPot, players[2].Stack)
	}
	if pot != 16 {
		t.Errorf("pot = %d, want 16", pot)
	}
}
