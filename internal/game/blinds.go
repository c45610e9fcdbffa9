package game

// AssignBlinds rotates the dealer/small-blind/big-blind roles onto the
// seating order and posts the forced bets. Blind amounts are clamped to the
// short stack, never rejected, so a covered blind is an all-in post.
// It returns the blind seat indices and the pot formed by the two posts.
func AssignBlinds(players []*Player, dealerPos, smallBlind, bigBlind int) (sbIndex, bbIndex, pot int) {
	n := len(players)

	for _, p := range players {
		p.Dealer = false
		p.SmallBlind = false
		p.BigBlind = false
	}

	sbIndex = (dealerPos + 1) % n
	bbIndex = (dealerPos + 2) % n

	players[dealerPos].Dealer = true
	players[sbIndex].SmallBlind = true
	players[bbIndex].BigBlind = true

	sbPost := players[sbIndex].pay(smallBlind)
	bbPost := players[bbIndex].pay(bigBlind)

	return sbIndex, bbIndex, sbPost + bbPost
}
