package sqlinline

const QInsertSearch = `--sql 3f82a1bc-9d44-4e0a-b6c1-5274c09ad11e
insert into searches(id, account_id, query, location, results_count, payload, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::int, coalesce($6::jsonb, '[]'::jsonb), now());
`

const QSelectRecentSearches = `--sql 8b1d6f02-77ce-4aa3-9f35-e61d0b24a9c7
select id, query, location, results_count, created_at
from searches
where account_id = $1::text
order by created_at desc
limit $2::int;
`
