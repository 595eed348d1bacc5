package sqlinline

const QDeleteUsageEventsBefore = `--sql 97e5c2d8-40fb-4b13-a6de-08c7f1b92a34
delete from usage_events
where occurred_at < $1::timestamptz;
`

const QDeleteSearchesBefore = `--sql 2a6b8f41-c5d0-4e97-b382-6f19d04ce7b5
delete from searches
where created_at < $1::timestamptz;
`
