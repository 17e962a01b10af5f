package executor

import (
	"fmt"
	"net"

	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/mperrors"
	"github.com/minipar-lang/minipar/symtable"
)

// bannerCap and messageCap bound every blocking read from a channel socket, client or
// server side, per the wire format's "no framing, up to 2048 bytes"
// contract. The reference client-side banner read uses 2040; the spec's
// later message cap is 2048. Both are honored at their call sites.
const (
	bannerCap  = 2040
	messageCap = 2048
)

// execCChannel opens a blocking TCP connection, prints the server's
// initial banner, and stores the socket under the channel's name.
func (e *Executor) execCChannel(n *ast.CChannel) (signal, error) {
	host, err := e.evalExpr(n.Host)
	if err != nil {
		return signal{}, err
	}
	port, err := e.evalExpr(n.Port)
	if err != nil {
		return signal{}, err
	}

	addr := fmt.Sprintf("%s:%d", host.Str, int64(port.Num))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return signal{}, mperrors.NewRuntime("c_channel %s: connect to %s: %v", n.Name, addr, err)
	}

	buf := make([]byte, bannerCap)
	count, err := conn.Read(buf)
	if err != nil {
		conn.Close()
		return signal{}, mperrors.NewRuntime("c_channel %s: reading banner: %v", n.Name, err)
	}
	fmt.Fprintln(e.out, string(buf[:count]))

	e.conns.set(n.Name, conn)
	return signal{}, nil
}

// execSChannel binds and listens, accepts exactly one connection, sends
// the description banner, then loops: receive up to messageCap bytes,
// exit on a zero-length receive, otherwise dispatch to the bound
// function and send back its textual result.
func (e *Executor) execSChannel(n *ast.SChannel) (signal, error) {
	host, err := e.evalExpr(n.Host)
	if err != nil {
		return signal{}, err
	}
	port, err := e.evalExpr(n.Port)
	if err != nil {
		return signal{}, err
	}
	desc, err := e.evalExpr(n.Description)
	if err != nil {
		return signal{}, err
	}

	addr := fmt.Sprintf("%s:%d", host.Str, int64(port.Num))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return signal{}, mperrors.NewRuntime("s_channel %s: listen on %s: %v", n.Name, addr, err)
	}
	defer ln.Close()

	conn, err := ln.Accept()
	if err != nil {
		return signal{}, mperrors.NewRuntime("s_channel %s: accept: %v", n.Name, err)
	}
	defer conn.Close()

	if desc.Str != "" {
		if _, err := conn.Write([]byte(desc.Str)); err != nil {
			return signal{}, mperrors.NewRuntime("s_channel %s: sending banner: %v", n.Name, err)
		}
	}

	fn, ok := e.funcs[n.FuncName]
	if !ok {
		return signal{}, mperrors.NewRuntime("s_channel %s: function %q not defined", n.Name, n.FuncName)
	}

	buf := make([]byte, messageCap)
	for {
		count, err := conn.Read(buf)
		if err != nil || count == 0 {
			return signal{}, nil
		}

		result, err := e.invoke(fn, []symtable.Value{symtable.StringValue(string(buf[:count]))})
		if err != nil {
			return signal{}, err
		}
		if _, err := conn.Write([]byte(result.String())); err != nil {
			return signal{}, mperrors.NewRuntime("s_channel %s: writing response: %v", n.Name, err)
		}
	}
}

// channelSend writes data on the named client connection and reads back
// up to messageCap bytes, holding the channel's own mutex so at most one
// send is in flight on it at a time.
func (e *Executor) channelSend(name string, data symtable.Value) (symtable.Value, error) {
	entry, ok := e.conns.get(name)
	if !ok {
		return symtable.Value{}, mperrors.NewRuntime("channel %q is not open", name)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if _, err := entry.conn.Write([]byte(data.String())); err != nil {
		return symtable.Value{}, mperrors.NewRuntime("send on %q: %v", name, err)
	}
	buf := make([]byte, messageCap)
	count, err := entry.conn.Read(buf)
	if err != nil {
		return symtable.Value{}, mperrors.NewRuntime("send on %q: reading reply: %v", name, err)
	}
	return symtable.StringValue(string(buf[:count])), nil
}

func (e *Executor) channelClose(name string) error {
	entry, ok := e.conns.get(name)
	if !ok {
		return mperrors.NewRuntime("channel %q is not open", name)
	}
	defer e.conns.delete(name)
	if err := entry.conn.Close(); err != nil {
		return mperrors.NewRuntime("close on %q: %v", name, err)
	}
	return nil
}
