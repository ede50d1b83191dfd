package frame

// TxSelect puts the channel in transactional mode.
type TxSelect struct{}

func (*TxSelect) ID() (uint16, uint16) { return ClassTx, MethodTxSelect }
func (*TxSelect) write(*builder)       {}
func (*TxSelect) read(*reader)         {}

// TxSelectOk confirms transactional mode.
type TxSelectOk struct{}

func (*TxSelectOk) ID() (uint16, uint16) { return ClassTx, MethodTxSelectOk }
func (*TxSelectOk) write(*builder)       {}
func (*TxSelectOk) read(*reader)         {}

// TxCommit commits the current transaction.
type TxCommit struct{}

func (*TxCommit) ID() (uint16, uint16) { return ClassTx, MethodTxCommit }
func (*TxCommit) write(*builder)       {}
func (*TxCommit) read(*reader)         {}

// TxCommitOk confirms a commit.
type TxCommitOk struct{}

func (*TxCommitOk) ID() (uint16, uint16) { return ClassTx, MethodTxCommitOk }
func (*TxCommitOk) write(*builder)       {}
func (*TxCommitOk) read(*reader)         {}

// TxRollback abandons the current transaction.
type TxRollback struct{}

func (*TxRollback) ID() (uint16, uint16) { return ClassTx, MethodTxRollback }
func (*TxRollback) write(*builder)       {}
func (*TxRollback) read(*reader)         {}

// TxRollbackOk confirms a rollback.
type TxRollbackOk struct{}

func (*TxRollbackOk) ID() (uint16, uint16) { return ClassTx, MethodTxRollbackOk }
func (*TxRollbackOk) write(*builder)       {}
func (*TxRollbackOk) read(*reader)         {}
