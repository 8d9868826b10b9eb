package handler

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Stress Manometer Report Generator</title>
<style>
  body { font-family: system-ui, sans-serif; background: #f8fafc; color: #0f172a; margin: 0; }
  main { max-width: 960px; margin: 40px auto; padding: 0 20px; }
  h1 { font-size: 1.6rem; }
  section { background: #fff; border: 1px solid #e2e8f0; border-radius: 8px; padding: 20px; margin-bottom: 20px; }
  label { display: block; font-weight: 600; margin: 10px 0 4px; }
  button { background: #0f172a; color: #fff; border: 0; border-radius: 6px; padding: 8px 16px; cursor: pointer; margin-top: 12px; }
  table { border-collapse: collapse; width: 100%; font-size: .85rem; margin-top: 12px; }
  th, td { border: 1px solid #e2e8f0; padding: 4px 8px; text-align: left; }
  .error { color: #b91c1c; }
  .hidden { display: none; }
</style>
</head>
<body>
<main>
  <h1>Student Exam Stress Manometer</h1>

  <section>
    <label for="file">1. Upload survey (CSV or XLSX)</label>
    <input type="file" id="file" accept=".csv,.xlsx">
    <button id="upload">Load</button>
    <p id="upload-status"></p>
  </section>

  <section id="step2" class="hidden">
    <label for="school">2. Select school</label>
    <select id="school"></select>
    <button id="inspect">Inspect data</button>
    <a id="export" href="#">Download processed data</a>
    <div id="inspection"></div>
  </section>

  <section id="step3" class="hidden">
    <form id="report" method="post" enctype="multipart/form-data">
      <input type="hidden" name="school" id="report-school">
      <label for="logo">3. School logo (optional PNG/JPG)</label>
      <input type="file" name="logo" id="logo" accept=".png,.jpg,.jpeg">
      <label for="format">Format</label>
      <select name="format" id="format">
        <option value="html">HTML</option>
        <option value="pdf">PDF</option>
      </select>
      <button type="submit">Generate report</button>
    </form>
  </section>
</main>
<script>
let datasetId = null;
const $ = (id) => document.getElementById(id);

function setStatus(text, isError) {
  $('upload-status').textContent = text;
  $('upload-status').className = isError ? 'error' : '';
}

function syncSchool() {
  const school = $('school').value;
  $('report-school').value = school;
  $('report').action = '/datasets/' + datasetId + '/reports';
  $('export').href = '/datasets/' + datasetId + '/export?school=' + encodeURIComponent(school);
}

$('upload').onclick = async () => {
  const file = $('file').files[0];
  if (!file) { setStatus('Choose a file first.', true); return; }
  const body = new FormData();
  body.append('file', file);
  const res = await fetch('/datasets', { method: 'POST', body });
  const json = await res.json();
  if (!json.success) { setStatus(json.message, true); return; }
  datasetId = json.data.id;
  setStatus('Loaded ' + json.data.rows + ' rows from ' + json.data.filename + '.', false);
  $('school').innerHTML = '';
  for (const s of json.data.schools) {
    const opt = document.createElement('option');
    opt.value = s; opt.textContent = s;
    $('school').appendChild(opt);
  }
  $('step2').classList.remove('hidden');
  $('step3').classList.remove('hidden');
  syncSchool();
};

$('school').onchange = syncSchool;

$('inspect').onclick = async () => {
  const school = encodeURIComponent($('school').value);
  const res = await fetch('/datasets/' + datasetId + '/inspect?school=' + school);
  const json = await res.json();
  const out = $('inspection');
  out.innerHTML = '';
  if (!json.success) { out.textContent = json.message; out.className = 'error'; return; }
  out.className = '';
  const agg = json.data.aggregate;
  const summary = document.createElement('p');
  summary.textContent = agg.count + ' students. Anxiety ' + agg.anxiety_pct + '%, parental pressure ' +
    agg.parent_pressure_pct + '%, support ' + agg.support_pct + '%.';
  out.appendChild(summary);
  const table = document.createElement('table');
  const head = table.insertRow();
  for (const h of ['#', 'Q1', 'Q2', 'Q3', 'Q4', 'Q5', 'Score', 'Category', 'Defaulted']) {
    const th = document.createElement('th'); th.textContent = h; head.appendChild(th);
  }
  for (const r of json.data.rows) {
    const tr = table.insertRow();
    for (const v of [r.row, ...r.answers, r.total_score, r.category, r.defaulted]) {
      tr.insertCell().textContent = v;
    }
  }
  out.appendChild(table);
};
</script>
</body>
</html>
`
