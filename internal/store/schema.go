package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS session_state (
    session_id             TEXT PRIMARY KEY,
    start_time             TEXT NOT NULL,
    last_cumulative_tokens INTEGER NOT NULL DEFAULT 0,
    message_count          INTEGER NOT NULL DEFAULT 0,
    tool_call_count        INTEGER NOT NULL DEFAULT 0,
    files_edited_count     INTEGER NOT NULL DEFAULT 0,
    bash_command_count     INTEGER NOT NULL DEFAULT 0,
    updated_at             TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_state_updated ON session_state(updated_at);
`
