// Package chain implements the post chain: the post model and its Keccak
// content addressing, the score estimator, the store of posts and their
// derived indices, the insertion algorithm with its orphan buffer, and the
// greatest-cumulative-score fork choice.
package chain
