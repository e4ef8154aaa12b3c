package node

import (
	"math/big"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/workpost-net/workpost/src/chain"
	"github.com/workpost-net/workpost/src/config"
	"github.com/workpost-net/workpost/src/net"
	"github.com/workpost-net/workpost/src/peers"
)

// Node is a workpost node: the chain, the transport, and the cooperative
// dispatch loop that ties them together. The loop is the only writer of the
// chain; chainLock exists for readers on other goroutines, such as the HTTP
// service.
type Node struct {
	state

	conf   *config.Config
	logger *logrus.Entry

	chain     *chain.Chain
	chainLock sync.Mutex

	trans net.Transport
	peers []*peers.Peer

	// submitCh carries locally mined posts into the dispatch loop.
	submitCh chan *chain.Post

	sigintCh   chan os.Signal
	shutdownCh chan struct{}

	start time.Time
}

// NewNode is a factory method that returns a Node instance. The node's own
// endpoint is excluded from its peer list.
func NewNode(conf *config.Config,
	peerList []*peers.Peer,
	store chain.Store,
	trans net.Transport,
) *Node {
	//Prepare sigintCh to relay SIGINT system calls
	sigintCh := make(chan os.Signal, 1)
	signal.Notify(sigintCh, os.Interrupt, syscall.SIGINT)

	logger := conf.Logger().WithField("this_node", trans.LocalAddr())

	node := Node{
		conf:       conf,
		logger:     logger,
		chain:      chain.NewChain(store, logger),
		trans:      trans,
		peers:      peers.ExcludePeer(peerList, trans.LocalAddr()),
		submitCh:   make(chan *chain.Post, 16),
		sigintCh:   sigintCh,
		shutdownCh: make(chan struct{}),
	}

	return &node
}

// Init initialises the node and starts the background miner when enabled.
func (n *Node) Init() error {
	n.logger.WithFields(logrus.Fields{
		"peers": len(n.peers),
		"mine":  n.conf.Mine,
	}).Debug("Init")

	n.setState(Running)

	if n.conf.Mine {
		n.goFunc(n.mineLoop)
	}

	return nil
}

// RunAsync calls Run as a separate thread.
func (n *Node) RunAsync() {
	go n.Run()
}

// Run invokes the main loop of the node: drain the inbox, dispatch each
// datagram in arrival order, integrate locally mined posts, gossip a Ping to
// every peer, sleep one heartbeat, repeat.
func (n *Node) Run() {
	n.start = time.Now()
	n.logger.Debug("Run")

	for n.getState() == Running {
		n.doWork()

		select {
		case <-n.sigintCh:
			n.Shutdown()
		case <-n.shutdownCh:
			return
		case <-time.After(n.conf.HeartbeatTimeout):
		}
	}
}

// doWork performs one iteration of the loop.
func (n *Node) doWork() {
	inbox, err := n.trans.Recv()
	if err != nil {
		n.logger.WithError(err).Error("Reading inbox")
	}

	for _, dg := range inbox {
		n.handleDatagram(dg)
	}

	n.drainSubmitCh()

	n.broadcast(net.Ping())
}

// handleDatagram applies one datagram to the node state. Malformed sender
// endpoints and undecodable payloads are dropped silently; gossip will
// redeliver anything that matters.
func (n *Node) handleDatagram(dg net.Datagram) {
	sender, err := peers.FromEndpoint(dg.From)
	if err != nil {
		n.logger.WithError(err).Debug("Dropping datagram")
		return
	}

	msg, err := net.Decode(dg.Payload)
	if err != nil {
		n.logger.WithError(err).Debug("Dropping datagram")
		return
	}

	n.logger.Debugf("%s %s", sender, msg.Type)

	switch msg.Type {
	case net.PingMsg:
		n.send(sender.NetAddr, net.Pong())

	case net.PongMsg:
		//no-op

	case net.GetTipMsg:
		if !n.conf.AnswerGetTip {
			return
		}
		n.chainLock.Lock()
		post, ok := n.chain.GetPost(n.chain.Tip())
		n.chainLock.Unlock()
		if ok {
			n.send(sender.NetAddr, net.SharePost(post))
		}

	case net.RequestPostMsg:
		n.chainLock.Lock()
		post, ok := n.chain.GetPost(msg.Hash)
		n.chainLock.Unlock()
		if ok {
			n.send(sender.NetAddr, net.SharePost(post))
		}

	case net.SharePostMsg:
		n.chainLock.Lock()
		n.chain.AddPost(sender.NetAddr, msg.Post)
		n.chainLock.Unlock()
	}
}

// drainSubmitCh integrates locally mined posts and gossips them.
func (n *Node) drainSubmitCh() {
	for {
		select {
		case post := <-n.submitCh:
			n.chainLock.Lock()
			n.chain.AddPost(n.trans.LocalAddr(), post)
			n.chainLock.Unlock()

			n.broadcast(net.SharePost(post))

		default:
			return
		}
	}
}

// mineLoop runs budgeted mining rounds on top of the current tip and pushes
// solved posts into the submit channel. It runs outside the dispatch loop and
// only reads the tip, under chainLock; it never adds posts to the chain itself.
func (n *Node) mineLoop() {
	target := new(big.Int).SetUint64(n.conf.MineTarget)

	for n.getState() == Running {
		n.chainLock.Lock()
		tip := n.chain.Tip()
		n.chainLock.Unlock()

		post := &chain.Post{Prev: tip}

		hash, ok := chain.Mine(post, target, n.conf.MineBudget)
		if !ok {
			continue
		}

		n.logger.WithField("post", hash.Short()).Debug("Mined post")

		select {
		case n.submitCh <- post:
		case <-n.shutdownCh:
			return
		}
	}
}

// send encodes and transmits a message. UDP send errors are logged and
// otherwise ignored.
func (n *Node) send(addr string, msg net.Message) {
	if err := n.trans.Send(addr, net.Encode(msg)); err != nil {
		n.logger.WithError(err).WithField("to", addr).Debug("Sending message")
	}
}

// broadcast sends a message to every peer.
func (n *Node) broadcast(msg net.Message) {
	for _, p := range n.peers {
		n.send(p.NetAddr, msg)
	}
}

// Shutdown stops the loop and the background routines, and closes the
// transport.
func (n *Node) Shutdown() {
	if n.getState() == Shutdown {
		return
	}

	n.logger.Debug("Shutdown")

	n.setState(Shutdown)
	close(n.shutdownCh)
	n.waitRoutines()

	if err := n.trans.Close(); err != nil {
		n.logger.WithError(err).Error("Closing transport")
	}
}

/*******************************************************************************
Accessors, used by the HTTP service
*******************************************************************************/

// GetStats returns a snapshot of node statistics.
func (n *Node) GetStats() map[string]string {
	n.chainLock.Lock()
	defer n.chainLock.Unlock()

	uptime := ""
	if !n.start.IsZero() {
		uptime = time.Since(n.start).String()
	}

	return map[string]string{
		"tip":         n.chain.Tip().String(),
		"tip_score":   n.chain.TipScore().String(),
		"num_posts":   strconv.Itoa(n.chain.Store().PostCount()),
		"num_pending": strconv.Itoa(n.chain.Store().PendingCount()),
		"num_peers":   strconv.Itoa(len(n.peers)),
		"state":       n.getState().String(),
		"uptime":      uptime,
	}
}

// GetTip returns the tip hash and its cumulative score.
func (n *Node) GetTip() (chain.Hash, *big.Int) {
	n.chainLock.Lock()
	defer n.chainLock.Unlock()

	return n.chain.Tip(), n.chain.TipScore()
}

// GetPost returns a post by hash.
func (n *Node) GetPost(hash chain.Hash) (*chain.Post, bool) {
	n.chainLock.Lock()
	defer n.chainLock.Unlock()

	return n.chain.GetPost(hash)
}

// GetCanonical returns the canonical chain from genesis to tip.
func (n *Node) GetCanonical() []*chain.Post {
	n.chainLock.Lock()
	defer n.chainLock.Unlock()

	return n.chain.Canonical()
}

// Peers returns the node's peer list.
func (n *Node) Peers() []*peers.Peer {
	return n.peers
}
