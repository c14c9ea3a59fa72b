// Package predicate translates Python-style boolean expressions over a
// feature vector into document predicates.
//
// Supported syntax:
//
//	X['color'] == 'red'              feature by name
//	X[2] > 1.5                       feature by position
//	X['size'] in [1, 2, 3]           membership (also "not in")
//	X['age'] is None                 missing test (also "is not None")
//	not (a and b) or c               boolean operators and parentheses
//	True, False                      constant predicates
//
// A Binary (one-hot indicator) feature compares with 1/0 or True/False and
// becomes an equality test on its source field. "not" is pushed down to the
// leaves, so the output never contains a negation node.
package predicate
