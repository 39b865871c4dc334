package aerospace

import "fmt"

// ConnectionError means no usable transport: the socket was never
// connected, or a transport fault survived the single reconnect-and-retry.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return "aerospace: not connected"
	}
	return fmt.Sprintf("aerospace: connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// CommandError means the daemon executed the command and reported a
// non-zero exit code; Stderr carries its diagnostic.
type CommandError struct {
	Stderr string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("aerospace: command failed: %s", e.Stderr)
}

// ProtocolError means the response could not be understood even though the
// transport itself was healthy.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("aerospace: malformed response: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
