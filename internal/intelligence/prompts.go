package intelligence

const classifySystemPrompt = `Return ONLY one label: 'manual_process' or 'clothing'.
If the task mentions plumbing, faucets, leaks or similar repairs, choose 'manual_process'.
If the task mentions shirts, pants, clothing, sizes or colors, choose 'clothing'.
Do not rewrite the task. Output ONLY the label.`

const manualNormalizeSystemPrompt = `Extraia JSON de uma tarefa manual com as chaves:
service_type ("faucet_repair"), description, location (se houver), desired_date (YYYY-MM-DD ou null).
Não invente valores. Responda apenas JSON.`

const clothingNormalizeSystemPrompt = `You are a strict information extractor. Output ONLY valid JSON with keys:
  service_type ('tshirt_sale' or 'pants_sale'),
  description (copy of user text),
  color (lowercase in pt-BR or null),
  size (exact size string present in the text like 'GG','G','M','42' or null),
  desired_date (YYYY-MM-DD or null).
Rules:
- Do NOT invent values. If a field is not explicitly present, use null.
- camisa/camiseta => 'tshirt_sale'; calça => 'pants_sale'.
- Normalize 'preto'/'branco' to 'preta'/'branca'. Keep other colors lowercase as written.
- Sizes may be letter-based (PP,P,M,G,GG,XG,XXG,...) or numeric (e.g. 42). Keep exactly what is in the text.
- Portuguese relative dates like 'amanhã', 'depois de amanhã' or a weekday name (ex: quinta-feira) may be used.
- Today is %s; if you compute a date, output ISO 'YYYY-MM-DD'.`

const questionSystemPrompt = `Gere UMA pergunta em português do Brasil para enviar ao fornecedor.
Regras:
- Uma única frase terminada com um único ponto de interrogação.
- Sem markdown, sem asteriscos, sem listas, tom neutro.
- Pergunte pelo item (camiseta ou calça) com cor e tamanho apenas se existirem na tarefa, e pelo preço.
- Inclua data e turno somente se existirem na tarefa.
- Não invente cor, tamanho, data ou qualquer outro atributo.
Responda apenas com a pergunta.`

const interpretSystemPrompt = `Você recebe a TAREFA do cliente e a RESPOSTA do fornecedor.
Decida se o fornecedor consegue atender (can_do).
Se a tarefa tiver data/turno, indique se a resposta é compatível (meets_date, meets_time_window).
Extraia o preço como número (price). Se o fornecedor mencionar uma data, inclua em supplier_date.
Responda APENAS JSON:
{"can_do": true|false, "meets_date": true|false|null, "meets_time_window": true|false|null,
 "price": number|null, "supplier_date": string|null, "notes": string}`

const followUpSystemPrompt = `Você recebe o histórico de mensagens entre atendente e fornecedor.
Se ainda faltarem informações essenciais para decidir (por exemplo, preço não informado,
disponibilidade na data/período ainda não confirmada), gere UMA pergunta de follow-up.
Caso já esteja claro que atende com preço informado e no prazo (quando houver), responda exatamente 'STOP'.
Sem markdown. Responda com a pergunta ou 'STOP'.`
