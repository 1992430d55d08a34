// Package game implements the core blackjack game logic.
//
// The main type is Round, which runs a single round from deal to
// settlement: it debits the player's wager, deals alternating cards with
// the dealer's second card face down, consults an Agent through the
// player's turn, plays the dealer out to 17 and settles against the
// player's balance.
//
// # Basic Usage
//
// Create and play a round:
//
//	player := game.NewPlayer("Alice", 100)
//	round := game.NewRound(shoe, player)
//	result, err := round.Play(10, game.PolicyAgent{StandAt: 17})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Outcome, result.Net)
//
// # Deterministic Testing
//
// A Round draws from any CardSource. Tests inject a scripted sequence or
// a seeded shoe for complete control:
//
//	rng := randutil.New(42) // Fixed seed
//	shoe := deck.NewShoe(rng, 6)
//	round := game.NewRound(shoe, player)
//
// # Architecture
//
// Round delegates responsibilities to specialized components:
//   - Hand: Scores cards, demoting aces from 11 to 1 as needed
//   - Player: Holds the balance and validates wagers
//   - Dealer: Conceals the hole card and draws to 17
//   - EventBus: Publishes round events to front ends
//
// Each round plays exactly once; a session is a loop of rounds sharing
// one shoe and one player.
package game
