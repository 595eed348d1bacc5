package sqlinline

const QSelectAccountByID = `--sql 6c3d9a10-2e84-4f6b-8d27-94b10cf3a5e8
select id, tier_id, created_at, updated_at
from accounts
where id = $1::text;
`

const QUpdateAccountTier = `--sql d4f0b72e-1a39-4c58-9b06-3e8a512fc794
update accounts
set tier_id = $2::text, updated_at = now()
where id = $1::text
returning id, tier_id, updated_at;
`
